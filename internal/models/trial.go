package models

import "time"

// Статусы пробного периода. Переход active -> expired выполняется
// лениво при чтении, фонового процесса нет.
const (
	TrialActive    = "active"
	TrialConverted = "converted"
	TrialCancelled = "cancelled"
	TrialExpired   = "expired"
)

// Trial представляет пробный период пользователя.
// Инвариант: у пользователя не более одного пробного периода
// в статусе active, что обеспечивается уникальным индексом в базе.
type Trial struct {
	ID             int            // Идентификатор записи
	UserUID        string         // Владелец пробного периода
	TrialType      string         // Запрошенный план: basic, premium, enterprise
	SubscriptionID *int           // Подписка, в которую сконвертирован период
	StartDate      time.Time      // Дата начала
	EndDate        time.Time      // Дата окончания: StartDate + длительность плана
	Status         string         // Текущий статус
	UsageStats     map[string]any // Счётчики использования за период
}
