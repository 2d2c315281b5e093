package masking

// Classify определяет схему маскирования для произвольного значения,
// полученного из JSON-ответа: объекта (map) или массива объектов.
//
// Проверка структурная: сигнатурные поля проверяются в фиксированном
// порядке приоритета, первый найденный ключ определяет тип. Массив
// классифицируется по первому элементу, пустой массив и нераспознанные
// структуры дают SchemaNone — это штатный результат, а не ошибка:
// перехватчик не должен трогать посторонние ответы.
func Classify(v any) Schema {
	switch val := v.(type) {
	case map[string]any:
		for _, sig := range signaturePriority {
			if _, ok := val[sig.Field]; ok {
				return sig.Schema
			}
		}
		return SchemaNone
	case []any:
		if len(val) == 0 {
			return SchemaNone
		}
		return Classify(val[0])
	default:
		return SchemaNone
	}
}
