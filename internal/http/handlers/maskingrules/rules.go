// Package maskingrules реализует HTTP-обработчик, отдающий клиенту
// таблицы правил маскирования. Клиентское зеркало строит из них
// презентационную логику (бейджи "upgrade", клик по маскированному полю)
// и никогда не получает исходные значения: к клиенту приходит уже
// маскированный ответ, зеркало лишь объясняет, что именно скрыто.
package maskingrules

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/estate-leads/internal/http/response"
	"github.com/magabrotheeeer/estate-leads/internal/masking"
)

// Handler обрабатывает запросы на получение таблиц правил маскирования.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP отдаёт таблицы правил из того же источника, который исполняет
// движок маскирования: расхождение клиента и сервера исключено по построению.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	schemas := make(map[string]map[string]masking.Rule)
	for _, s := range []masking.Schema{
		masking.SchemaProperty,
		masking.SchemaAuction,
		masking.SchemaOwner,
		masking.SchemaLoan,
	} {
		schemas[string(s)] = masking.Rules(s)
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"schemas":            schemas,
		"upsell_text":        masking.UpsellText,
		"partial_prefix_len": masking.PartialPrefixLen,
		"synthetic_fields":   []string{masking.FieldEquityRange, masking.FieldLeadScore},
	}))
}
