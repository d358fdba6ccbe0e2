package ledger

import (
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// Kind es el par canónico (polaridad, tipo de razón) de un movimiento.
// Toda petición de creación debe resolverse a exactamente un Kind válido
// antes de llegar al reconciliador.
type Kind struct {
	Polarity   string
	ReasonType string
}

// reasonPolarity fija la polaridad implícita de cada tipo de razón.
// Vacío = la razón admite ambas polaridades (el request debe indicarla).
var reasonPolarity = map[string]string{
	entity.ReasonSale:       entity.PolarityDecrease,
	entity.ReasonPurchase:   entity.PolarityIncrease,
	entity.ReasonReturn:     entity.PolarityIncrease,
	entity.ReasonAdjustment: "",
}

// legacyTypes mapea los vocabularios ad hoc observados en los prototipos
// (in/out, add/remove) al modelo canónico. Todos resuelven a ajuste.
var legacyTypes = map[string]Kind{
	"in":      {entity.PolarityIncrease, entity.ReasonAdjustment},
	"add":     {entity.PolarityIncrease, entity.ReasonAdjustment},
	"entrada": {entity.PolarityIncrease, entity.ReasonAdjustment},
	"out":     {entity.PolarityDecrease, entity.ReasonAdjustment},
	"remove":  {entity.PolarityDecrease, entity.ReasonAdjustment},
	"salida":  {entity.PolarityDecrease, entity.ReasonAdjustment},
}

// ResolveKind resuelve el par canónico desde los campos del request.
//
//   - movementType puede ser un tipo de razón canónico (sale, purchase,
//     adjustment, return) o un tipo legado (in, out, add, remove).
//   - polarity es opcional salvo para adjustment; si se envía junto a una
//     razón con polaridad implícita, debe coincidir.
//
// Combinaciones no reconocidas o contradictorias devuelven ErrInvalidInput.
func ResolveKind(movementType, polarity string) (Kind, error) {
	if k, ok := legacyTypes[movementType]; ok {
		if polarity != "" && polarity != k.Polarity {
			return Kind{}, domain.ErrInvalidInput
		}
		return k, nil
	}

	implied, ok := reasonPolarity[movementType]
	if !ok {
		return Kind{}, domain.ErrInvalidInput
	}
	switch {
	case implied == "":
		// adjustment: la polaridad debe venir explícita
		if polarity != entity.PolarityIncrease && polarity != entity.PolarityDecrease {
			return Kind{}, domain.ErrInvalidInput
		}
		return Kind{Polarity: polarity, ReasonType: movementType}, nil
	case polarity != "" && polarity != implied:
		return Kind{}, domain.ErrInvalidInput
	default:
		return Kind{Polarity: implied, ReasonType: movementType}, nil
	}
}

// ValidKind verifica que un par (polarity, reasonType) ya resuelto sea
// miembro del modelo canónico. Se usa al reconstruir movimientos persistidos.
func ValidKind(polarity, reasonType string) bool {
	if polarity != entity.PolarityIncrease && polarity != entity.PolarityDecrease {
		return false
	}
	implied, ok := reasonPolarity[reasonType]
	if !ok {
		return false
	}
	return implied == "" || implied == polarity
}
