package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации в exchange уведомлений.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди, которые слушает внешний
// сервис рассылки уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notifications.trial", RoutingKey: "trial"},
	}
}
