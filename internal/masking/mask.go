package masking

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode/utf8"
)

// Mask возвращает маскированную копию записи по таблице правил схемы.
// Чистая функция: вход никогда не мутируется, всегда возвращается новая
// map. Это обязательно — одна и та же запись может переиспользоваться
// между запросами (например, из кеша), и мутация на месте утекла бы
// другим вызывающим.
//
// Маскирование идемпотентно: Mask(Mask(r, s), s) == Mask(r, s).
func Mask(rec map[string]any, s Schema) map[string]any {
	rules := fieldRules[s]
	if rules == nil {
		return rec
	}

	masked := make(map[string]any, len(rec)+2)
	for k, v := range rec {
		rule, sensitive := rules[k]
		if !sensitive {
			masked[k] = v
			continue
		}
		masked[k] = applyRule(rule, v)
	}

	if s == SchemaProperty {
		attachSynthetic(rec, masked)
	}
	return masked
}

// applyRule применяет одно правило к значению. Каждое правило идемпотентно:
// повторное применение к уже маскированному значению ничего не меняет.
func applyRule(rule Rule, v any) any {
	switch rule {
	case RuleRedact:
		return redactedValue
	case RuleNumeric:
		return maskNumeric(v)
	case RulePartial:
		return maskPartial(v)
	case RuleText:
		return UpsellText
	case RuleDateYear:
		return truncateDate(v, 4)
	case RuleDateYearMonth:
		return truncateDate(v, 7)
	default:
		return redactedValue
	}
}

// maskNumeric заменяет число строкой из звёздочек, сохраняя количество
// цифр целой части. Цена не превращается в выдуманное число — только
// в заглушку той же ширины. Строковые значения считаются уже
// маскированными и возвращаются как есть.
func maskNumeric(v any) any {
	var n float64
	switch num := v.(type) {
	case float64:
		n = num
	case int:
		n = float64(num)
	case int64:
		n = float64(num)
	default:
		return v
	}
	digits := 1
	if abs := math.Abs(n); abs >= 10 {
		digits = int(math.Log10(abs)) + 1
	}
	return strings.Repeat("*", digits)
}

// maskPartial оставляет открытым префикс фиксированной длины и добавляет
// фиксированный хвост из звёздочек: "78701" -> "78***". Повторное
// применение стабильно: уже маскированное значение (хвост из звёздочек
// при префиксе не длиннее допустимого) возвращается без изменений,
// иначе короткое значение вроде "7***" получало бы звёздочку в префикс.
// Префикс отрезается по рунам, а не по байтам, чтобы многобайтовый
// первый символ не превращался в битый UTF-8.
func maskPartial(v any) any {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	if strings.HasSuffix(s, partialSuffix) &&
		utf8.RuneCountInString(s) <= PartialPrefixLen+len(partialSuffix) {
		return s
	}
	r := []rune(s)
	if len(r) <= PartialPrefixLen {
		return s + partialSuffix
	}
	return string(r[:PartialPrefixLen]) + partialSuffix
}

// truncateDate оставляет от строкового представления даты первые n
// символов: 4 — только год, 7 — год и месяц.
func truncateDate(v any, n int) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// attachSynthetic добавляет к маскированной копии записи недвижимости
// презентационные поля: диапазон капитала и оценку лида. Поля
// синтетические, существуют только в маскированном представлении.
// Если запись уже содержит их (повторное маскирование), значения
// сохраняются без пересчёта.
func attachSynthetic(orig, masked map[string]any) {
	if v, ok := orig[FieldEquityRange]; ok {
		masked[FieldEquityRange] = v
	} else {
		masked[FieldEquityRange] = equityRange(orig["price"])
	}
	if v, ok := orig[FieldLeadScore]; ok {
		masked[FieldLeadScore] = v
	} else {
		masked[FieldLeadScore] = LeadScore(orig["id"])
	}
}

// equityRange возвращает диапазон капитала по цене объекта.
func equityRange(price any) string {
	var p float64
	switch num := price.(type) {
	case float64:
		p = num
	case int64:
		p = float64(num)
	case int:
		p = float64(num)
	default:
		return "unknown"
	}
	switch {
	case p < 200000:
		return "low"
	case p < 500000:
		return "medium"
	default:
		return "high"
	}
}

// LeadScore возвращает оценку качества лида 0..99 как детерминированную
// функцию идентификатора записи. Одинаковый запрос всегда даёт одинаковый
// маскированный ответ, что сохраняет кешируемость.
func LeadScore(id any) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprint(id)))
	return int(h.Sum32() % 100)
}
