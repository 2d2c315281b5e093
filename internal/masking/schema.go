// Package masking реализует конвейер маскирования полей для записей каталога:
// классификацию записи по структуре, таблицы правил для каждого типа записи
// и чистую функцию маскирования. Пакет не выполняет I/O, все функции
// детерминированы: одинаковый вход всегда даёт одинаковый выход.
package masking

// Schema определяет, какая таблица правил маскирования применяется к записи.
type Schema string

const (
	// SchemaNone — запись не распознана, маскирование не применяется.
	SchemaNone Schema = ""
	// SchemaProperty — запись объекта недвижимости.
	SchemaProperty Schema = "property"
	// SchemaAuction — аукционная запись.
	SchemaAuction Schema = "auction"
	// SchemaOwner — запись собственника.
	SchemaOwner Schema = "owner"
	// SchemaLoan — запись займа.
	SchemaLoan Schema = "loan"
)

// Rule — вид правила маскирования чувствительного поля.
type Rule string

const (
	// RuleRedact заменяет значение фиксированной строкой "***".
	RuleRedact Rule = "redact"
	// RuleNumeric заменяет число строкой из звёздочек по количеству цифр.
	RuleNumeric Rule = "numeric"
	// RulePartial оставляет префикс из двух символов, остальное — "***".
	RulePartial Rule = "partial"
	// RuleText заменяет текст рекламной фразой UpsellText.
	RuleText Rule = "text"
	// RuleDateYear оставляет от даты только год.
	RuleDateYear Rule = "date_year"
	// RuleDateYearMonth оставляет от даты год и месяц.
	RuleDateYearMonth Rule = "date_year_month"
)

// UpsellText — фраза, подставляемая вместо текстовых полей.
// Литерал является контрактом: клиент и тесты сравнивают побайтно.
const UpsellText = "Upgrade your plan to unlock full lead details."

// PartialPrefixLen — длина открытого префикса для правила RulePartial.
const PartialPrefixLen = 2

const redactedValue = "***"
const partialSuffix = "***"

// Синтетические поля, добавляемые к маскированной копии записи
// недвижимости. Существуют только в маскированном представлении
// и никогда не хранятся в базе.
const (
	// FieldEquityRange — диапазон капитала, производный от цены.
	FieldEquityRange = "equity_range"
	// FieldLeadScore — оценка качества лида, детерминированная функция ID.
	FieldLeadScore = "lead_score"
)

// signature — сигнатурное поле, по наличию которого запись относится к типу.
type signature struct {
	Field  string
	Schema Schema
}

// signaturePriority — порядок проверки сигнатурных полей. Первый найденный
// ключ определяет тип записи; порядок фиксирован и закреплён тестами,
// поскольку варианты могут делить необязательные поля.
var signaturePriority = []signature{
	{Field: "street_num", Schema: SchemaProperty},
	{Field: "auction_id", Schema: SchemaAuction},
	{Field: "last_name", Schema: SchemaOwner},
	{Field: "lender_name", Schema: SchemaLoan},
}

// fieldRules — таблицы правил: для каждого типа записи перечислены
// чувствительные поля и применяемое к ним правило. Поля, которых нет
// в таблице, считаются публичными и проходят без изменений.
// Таблицы являются единственным источником истины для движка маскирования
// и для клиентского зеркала (эндпоинт /masking/rules отдаёт их как есть).
var fieldRules = map[Schema]map[string]Rule{
	SchemaProperty: {
		"street_num":   RuleRedact,
		"street_name":  RuleRedact,
		"zip":          RulePartial,
		"price":        RuleNumeric,
		"est_value":    RuleNumeric,
		"listing_date": RuleDateYear,
		"description":  RuleText,
	},
	SchemaAuction: {
		"auction_id":   RulePartial,
		"auction_date": RuleDateYearMonth,
		"opening_bid":  RuleNumeric,
		"trustee_name": RuleRedact,
		"case_number":  RulePartial,
	},
	SchemaOwner: {
		"first_name":      RuleRedact,
		"last_name":       RuleRedact,
		"mailing_address": RuleRedact,
		"phone":           RulePartial,
		"email":           RulePartial,
		"notes":           RuleText,
	},
	SchemaLoan: {
		"lender_name":      RuleRedact,
		"loan_amount":      RuleNumeric,
		"interest_rate":    RuleNumeric,
		"origination_date": RuleDateYear,
	},
}

// Rules возвращает таблицу правил для схемы. Nil для SchemaNone.
func Rules(s Schema) map[string]Rule {
	return fieldRules[s]
}
