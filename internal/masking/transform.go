package masking

// Transform применяет маскирование к произвольному JSON-значению ответа.
// Распознанные записи и массивы записей маскируются по своей схеме;
// нераспознанные объекты обходятся рекурсивно, так что записи внутри
// стандартного конверта ответа ({status, data: {...}}) тоже находятся.
// Листовые значения без сигнатурных полей возвращаются без изменений.
//
// Возвращает преобразованное значение и количество маскированных записей
// по схемам (для метрик; пустая map — ничего не маскировалось).
func Transform(v any) (any, map[Schema]int) {
	counts := make(map[Schema]int)
	out := transform(v, counts)
	return out, counts
}

func transform(v any, counts map[Schema]int) any {
	switch val := v.(type) {
	case map[string]any:
		if s := Classify(val); s != SchemaNone {
			counts[s]++
			return Mask(val, s)
		}
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = transform(item, counts)
		}
		return out
	case []any:
		if len(val) == 0 {
			return val
		}
		if s := Classify(val); s != SchemaNone {
			out := make([]any, len(val))
			for i, item := range val {
				rec, ok := item.(map[string]any)
				if !ok {
					out[i] = item
					continue
				}
				counts[s]++
				out[i] = Mask(rec, s)
			}
			return out
		}
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = transform(item, counts)
		}
		return out
	default:
		return v
	}
}
