package models

import "time"

// Планы подписки.
const (
	PlanFree       = "free"
	PlanBasic      = "basic"
	PlanPremium    = "premium"
	PlanEnterprise = "enterprise"
)

// Статусы подписки. Записи никогда не удаляются физически,
// история сохраняется для аудита.
const (
	SubscriptionActive    = "active"
	SubscriptionTrialing  = "trialing"
	SubscriptionPastDue   = "past_due"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// Subscription представляет подписку пользователя на сервис.
// Инвариант: у пользователя не более одной подписки в статусе
// active или trialing одновременно.
type Subscription struct {
	ID           int            // Идентификатор подписки
	UserUID      string         // Владелец подписки
	PlanTier     string         // План: free, basic, premium, enterprise
	Status       string         // Текущий статус подписки
	StartDate    time.Time      // Дата начала действия
	EndDate      *time.Time     // Дата окончания, nil — без срока
	BillingCycle string         // Период оплаты: monthly или yearly
	Features     map[string]any // Возможности плана: имя -> лимит или флаг
}
