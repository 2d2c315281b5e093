package models

// Tier — эффективный уровень доступа вызывающего. Вычисляется на каждый
// запрос и нигде не хранится: источником истины являются записи подписок
// и пробных периодов.
type Tier string

const (
	// TierGuest — неаутентифицированный вызывающий.
	TierGuest Tier = "guest"
	// TierFree — аутентифицированный пользователь без оплаты.
	TierFree Tier = "free"
	// TierTrialing — пользователь с активным пробным периодом.
	TierTrialing Tier = "trialing"
	// TierPaid — пользователь с активной платной подпиской.
	TierPaid Tier = "paid"
)

// tierRank задаёт порядок уровней для сравнения привилегий.
var tierRank = map[Tier]int{
	TierGuest:    0,
	TierFree:     1,
	TierTrialing: 2,
	TierPaid:     3,
}

// Meets сообщает, достаточен ли уровень t для требуемого уровня required.
// Пробный период даёт trialing, а не paid: данные в ответе всё равно
// маскируются, полный доступ открывает только оплата.
func (t Tier) Meets(required Tier) bool {
	return tierRank[t] >= tierRank[required]
}
