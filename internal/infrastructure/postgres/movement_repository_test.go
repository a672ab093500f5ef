package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncerqueira/estoquebar-api/internal/domain/repository"
)

// O filtro de data deve cobrir o dia inteiro como janela semiaberta:
// [00:00 do dia, 00:00 do dia seguinte), no fuso da data recebida.
func TestBuildMovementListQuery_JanelaDoDia(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	day := time.Date(2026, time.August, 31, 14, 37, 9, 0, loc)

	query, args := buildMovementListQuery(repository.MovementFilter{Date: &day})

	assert.Contains(t, query, "created_at >= $1 AND created_at < $2")
	require.Len(t, args, 2)

	start, ok := args[0].(time.Time)
	require.True(t, ok)
	end, ok := args[1].(time.Time)
	require.True(t, ok)

	assert.Equal(t, time.Date(2026, time.August, 31, 0, 0, 0, 0, loc), start,
		"início da janela: meia-noite do dia, hora original descartada")
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, loc), end,
		"fim da janela: meia-noite do dia seguinte (exclusivo)")
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

// Com todos os filtros ativos, os índices posicionais devem acompanhar a
// ordem dos argumentos: data ocupa $1/$2 e empurra os demais.
func TestBuildMovementListQuery_IndicesPosicionais(t *testing.T) {
	day := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	query, args := buildMovementListQuery(repository.MovementFilter{
		Date:   &day,
		Sector: "bar",
		UserID: "user-7",
		Limit:  20,
		Offset: 40,
	})

	assert.Contains(t, query, "sector = $3")
	assert.Contains(t, query, "user_id = $4")
	assert.Contains(t, query, "LIMIT $5")
	assert.Contains(t, query, "OFFSET $6")
	assert.Equal(t, []any{
		day, day.AddDate(0, 0, 1), "bar", "user-7", 20, 40,
	}, args)
}

// Sem data, setor ocupa $1 e a numeração segue compactada.
func TestBuildMovementListQuery_SemDataReindexa(t *testing.T) {
	query, args := buildMovementListQuery(repository.MovementFilter{
		Sector: "cozinha",
		Limit:  10,
	})

	assert.NotContains(t, query, "created_at >=")
	assert.Contains(t, query, "sector = $1")
	assert.Contains(t, query, "LIMIT $2")
	assert.Equal(t, []any{"cozinha", 10}, args)
}

// Filtro vazio: sem WHERE extra, sem LIMIT/OFFSET, ordenado do mais recente.
func TestBuildMovementListQuery_FiltroVazio(t *testing.T) {
	query, args := buildMovementListQuery(repository.MovementFilter{})

	assert.Empty(t, args)
	assert.True(t, strings.HasSuffix(query, "ORDER BY created_at DESC"))
	assert.NotContains(t, query, "LIMIT")
	assert.NotContains(t, query, "OFFSET")
}
