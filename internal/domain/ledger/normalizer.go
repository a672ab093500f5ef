// Package ledger concentra a aritmética pura de movimentos de estoque
// (serviço de domínio): normalização numérica, aplicação e reversão de deltas.
package ledger

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Normalize converte representações numéricas heterogêneas (número, string com
// vírgula ou ponto decimal, nulo) em um decimal finito. Backends distintos
// serializam NUMERIC ora como número ora como string, e usuários digitam
// decimais no formato brasileiro ("12,5"); tudo converge aqui antes de
// qualquer cálculo. Valores não interpretáveis retornam fallback — política
// estreita de default, não supressão geral de erros.
//
// Idempotente: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw any, fallback decimal.Decimal) decimal.Decimal {
	switch v := raw.(type) {
	case nil:
		return fallback
	case decimal.Decimal:
		return v
	case *decimal.Decimal:
		if v == nil {
			return fallback
		}
		return *v
	case float64:
		return fromFloat(v, fallback)
	case float32:
		return fromFloat(float64(v), fallback)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case json.Number:
		return fromString(v.String(), fallback)
	case string:
		return fromString(v, fallback)
	default:
		return fromString(fmt.Sprint(raw), fallback)
	}
}

// NormalizeDefault aplica o fallback padrão zero.
func NormalizeDefault(raw any) decimal.Decimal {
	return Normalize(raw, decimal.Zero)
}

func fromFloat(f float64, fallback decimal.Decimal) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return decimal.NewFromFloat(f)
}

func fromString(s string, fallback decimal.Decimal) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	// Separador decimal brasileiro
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fallback
	}
	return d
}
