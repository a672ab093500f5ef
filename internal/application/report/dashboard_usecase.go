// Package report contém os casos de uso de relatórios do dashboard.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/vncerqueira/estoquebar-api/internal/application/dto"
	"github.com/vncerqueira/estoquebar-api/internal/domain"
	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
	"github.com/vncerqueira/estoquebar-api/internal/domain/repository"
)

const rankingLimit = 5 // funcionários exibidos no widget de ranking

// SummaryCache cache compartilhado das agregações do dashboard (visão
// derivada). Invalidado a cada escrita confirmada no ledger; um miss sempre
// reconsulta o banco, então o patch otimista nunca precisa estar completo.
type SummaryCache interface {
	GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, bool)
	SetSummary(ctx context.Context, summary *dto.DashboardSummaryDTO)
}

// DashboardUseCase monta o resumo do dia, a série semanal, o ranking de
// funcionários e os alertas de estoque baixo.
//
// Fonte de dados: ReportRepository (consultas read-only); o resultado completo
// é cacheado e reutilizado até a próxima invalidação.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	cache      SummaryCache
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository, cache SummaryCache) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, cache: cache}
}

// GetSummary constrói o DashboardSummaryDTO.
//
// Quatro consultas em paralelo:
//  1. GetDailyTotals(hoje)          → Today
//  2. GetDailySeries(últimos 7 dias) → Weekly
//  3. GetEmployeeRanking(7 dias)     → Ranking
//  4. ListLowStock                   → LowStock
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	if cached, ok := uc.cache.GetSummary(ctx); ok {
		return cached, nil
	}

	now := time.Now()

	// Hoje: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	// Semana: 6 dias atrás 00:00 – hoje 23:59
	weekStart := todayStart.AddDate(0, 0, -6)

	type totalsResult struct {
		totals *repository.DailyTotalsResult
		err    error
	}
	type seriesResult struct {
		series []repository.DailyTotalsResult
		err    error
	}
	type rankingResult struct {
		ranking []repository.EmployeeRankingResult
		err     error
	}
	type lowStockResult struct {
		items []*dto.ItemResponse
		err   error
	}

	todayCh := make(chan totalsResult, 1)
	weekCh := make(chan seriesResult, 1)
	rankCh := make(chan rankingResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		totals, err := uc.reportRepo.GetDailyTotals(ctx, todayStart, todayEnd)
		todayCh <- totalsResult{totals, err}
	}()
	go func() {
		series, err := uc.reportRepo.GetDailySeries(ctx, weekStart, todayEnd)
		weekCh <- seriesResult{series, err}
	}()
	go func() {
		ranking, err := uc.reportRepo.GetEmployeeRanking(ctx, weekStart, todayEnd, rankingLimit)
		rankCh <- rankingResult{ranking, err}
	}()
	go func() {
		items, err := uc.reportRepo.ListLowStock(ctx, "")
		lowCh <- lowStockResult{dto.ToItemResponses(items), err}
	}()

	today := <-todayCh
	week := <-weekCh
	rank := <-rankCh
	low := <-lowCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: totais de hoje: %w", today.err)
	}
	if week.err != nil {
		return nil, fmt.Errorf("dashboard: série semanal: %w", week.err)
	}
	if rank.err != nil {
		return nil, fmt.Errorf("dashboard: ranking: %w", rank.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: estoque baixo: %w", low.err)
	}

	summary := &dto.DashboardSummaryDTO{
		Today:     toDailyDTO(*today.totals),
		Weekly:    toDailyDTOs(week.series),
		Ranking:   toRankingDTOs(rank.ranking),
		LowStock:  low.items,
		DateLabel: monthLabel(now),
	}
	uc.cache.SetSummary(ctx, summary)
	return summary, nil
}

// LowStock lista os itens no limiar de alerta, opcionalmente por setor.
// Consulta direta, sem cache: a lista abastece a tela de reposição e deve
// refletir o último commit.
func (uc *DashboardUseCase) LowStock(ctx context.Context, sector string) ([]*dto.ItemResponse, error) {
	if sector != "" && !entity.ValidSector(sector) {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.reportRepo.ListLowStock(ctx, sector)
	if err != nil {
		return nil, fmt.Errorf("estoque baixo: %w", err)
	}
	return dto.ToItemResponses(items), nil
}

func toDailyDTO(r repository.DailyTotalsResult) dto.DailyTotalsDTO {
	return dto.DailyTotalsDTO{
		Day:        r.Day.Format("2006-01-02"),
		EntryCount: r.EntryCount,
		ExitCount:  r.ExitCount,
		EntrySum:   r.EntrySum,
		ExitSum:    r.ExitSum,
		EntryValue: r.EntryValue,
		ExitValue:  r.ExitValue,
	}
}

func toDailyDTOs(rs []repository.DailyTotalsResult) []dto.DailyTotalsDTO {
	out := make([]dto.DailyTotalsDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, toDailyDTO(r))
	}
	return out
}

func toRankingDTOs(rs []repository.EmployeeRankingResult) []dto.EmployeeRankingDTO {
	out := make([]dto.EmployeeRankingDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, dto.EmployeeRankingDTO{
			UserID:        r.UserID,
			UserName:      r.UserName,
			MovementCount: r.MovementCount,
			EntryCount:    r.EntryCount,
			ExitCount:     r.ExitCount,
		})
	}
	return out
}

// monthLabel etiqueta legível do mês, ex: "Setembro 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
