package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
	"github.com/pontocerto/ponto_backend/internal/utils/timecalc"
	"github.com/shopspring/decimal"
)

// secondsPerHour is the divisor for duration-to-hours conversion.
var secondsPerHour = decimal.NewFromInt(3600)

// BuildDailyJourney derives the journey for one user/day from its canonical
// punches. It is a pure function: same punches in, same journey out.
//
// Calendar-day bucketing uses loc, the organization's fixed local timezone.
// When legacy data contains duplicate types the earliest instance is used and
// the duplicate is reported as an anomaly, never silently dropped.
func BuildDailyJourney(userID string, date time.Time, punches []domain.Punch, loc *time.Location) domain.DailyJourney {
	journey := domain.DailyJourney{
		UserID:      userID,
		Date:        timecalc.DateOnly(date, loc),
		WorkedHours: decimal.Zero,
	}

	ordered := make([]domain.Punch, 0, len(punches))
	for _, p := range punches {
		if timecalc.SameDate(p.PunchedAt, journey.Date, loc) {
			ordered = append(ordered, p)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].PunchedAt.Before(ordered[j].PunchedAt)
	})

	for _, p := range ordered {
		at := p.PunchedAt
		slot := journeySlot(&journey, p.Type)
		if slot == nil {
			journey.Anomalies = append(journey.Anomalies, fmt.Sprintf("unknown punch type %q (punch %s)", p.Type, p.PunchID))
			continue
		}
		if *slot != nil {
			journey.Anomalies = append(journey.Anomalies, fmt.Sprintf("duplicate %s punch %s ignored, kept earliest", p.Type, p.PunchID))
			continue
		}
		*slot = &at
	}

	journey.WorkedHours = workedHours(journey)
	journey.Status = journeyStatus(journey)
	return journey
}

func journeySlot(j *domain.DailyJourney, t domain.PunchType) **time.Time {
	switch t {
	case domain.PunchEntrada:
		return &j.Entrada
	case domain.PunchSaidaIntervalo:
		return &j.SaidaIntervalo
	case domain.PunchRetornoIntervalo:
		return &j.RetornoIntervalo
	case domain.PunchSaidaFinal:
		return &j.SaidaFinal
	}
	return nil
}

// workedHours computes the day's total in hours, rounded to 2 decimal places.
// The break is subtracted only when both break punches exist and the pair is
// well-formed (retorno after saida_intervalo). A negative total floors at 0.
func workedHours(j domain.DailyJourney) decimal.Decimal {
	if j.Entrada == nil || j.SaidaFinal == nil {
		return decimal.Zero
	}
	total := j.SaidaFinal.Sub(*j.Entrada)
	if j.SaidaIntervalo != nil && j.RetornoIntervalo != nil && j.RetornoIntervalo.After(*j.SaidaIntervalo) {
		total -= j.RetornoIntervalo.Sub(*j.SaidaIntervalo)
	}
	if total < 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(total / time.Second)).Div(secondsPerHour).Round(2)
}

func journeyStatus(j domain.DailyJourney) domain.JourneyStatus {
	switch {
	case j.Entrada != nil && j.SaidaFinal != nil:
		return domain.JourneyCompleto
	case j.Entrada != nil:
		return domain.JourneyIncompleto
	default:
		return domain.JourneyAusente
	}
}
