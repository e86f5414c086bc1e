package notificaciones

import (
	"encoding/json"
	"fmt"

	"github.com/GestionTG-25-26/tg-backend/internal/eventbus"
	"github.com/GestionTG-25-26/tg-backend/internal/proyectos/domain"
)

// Render turns an event envelope into the notification text sent to the
// participants. Returns false for unknown event types.
func Render(envelope eventbus.Envelope) (string, bool) {
	switch envelope.Type {
	case domain.EventFormatoACreated:
		var e domain.FormatoACreated
		if err := json.Unmarshal(envelope.Data, &e); err != nil {
			return "", false
		}
		return fmt.Sprintf("Se registró el proyecto %q (intento %d del Formato A).", e.Title, e.Attempt), true

	case domain.EventFormatoAEvaluated:
		var e domain.FormatoAEvaluated
		if err := json.Unmarshal(envelope.Data, &e); err != nil {
			return "", false
		}
		if e.Approved {
			return fmt.Sprintf("El Formato A fue aprobado en el intento %d.", e.Attempt), true
		}
		return fmt.Sprintf("El Formato A fue rechazado en el intento %d: %s", e.Attempt, e.Comments), true

	case domain.EventFormatoAResubmitted:
		var e domain.FormatoAResubmitted
		if err := json.Unmarshal(envelope.Data, &e); err != nil {
			return "", false
		}
		return fmt.Sprintf("Se envió una nueva versión del Formato A (intento %d de %d).", e.Attempt, domain.MaxFormatoAAttempts), true

	case domain.EventAnteproyectoSubmitted:
		return "El director subió el anteproyecto; queda pendiente la asignación de evaluadores.", true

	case domain.EventEvaluatorsAssigned:
		var e domain.EvaluatorsAssigned
		if err := json.Unmarshal(envelope.Data, &e); err != nil {
			return "", false
		}
		return fmt.Sprintf("Se asignaron los evaluadores del anteproyecto (%s, %s).", e.Evaluator1ID, e.Evaluator2ID), true

	case domain.EventAnteproyectoEvaluated:
		var e domain.AnteproyectoEvaluated
		if err := json.Unmarshal(envelope.Data, &e); err != nil {
			return "", false
		}
		if e.Approved {
			return "El anteproyecto fue aprobado por ambos evaluadores.", true
		}
		return "El anteproyecto fue rechazado.", true
	}
	return "", false
}
