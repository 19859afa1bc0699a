package rabbitmq

// ReminderExchange — обменник для событий-напоминаний о задачах.
const ReminderExchange = "reminders"

// Имена очередей и ключи маршрутизации напоминаний.
const (
	DueTomorrowQueue      = "reminder.due"
	DueTomorrowRoutingKey = "due"
)

// QueueConfig связывает очередь с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetReminderQueues возвращает очереди конвейера напоминаний.
func GetReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: DueTomorrowQueue, RoutingKey: DueTomorrowRoutingKey},
	}
}
