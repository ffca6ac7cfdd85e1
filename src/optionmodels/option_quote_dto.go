package optionmodels

import (
	"fmt"
	"time"
)

// OptionQuoteDTO is the CSV row shape for chain snapshots exported by the
// fetch tooling. Optional columns are left empty rather than zero so that
// missing data stays distinguishable from a zero value.
type OptionQuoteDTO struct {
	Underlying   string  `csv:"underlying"`
	Strike       float64 `csv:"strike"`
	Expiration   string  `csv:"expiration"`
	OptionType   string  `csv:"option_type"`
	ImpliedVol   string  `csv:"implied_vol"`
	Delta        string  `csv:"delta"`
	Gamma        string  `csv:"gamma"`
	Theta        string  `csv:"theta"`
	Vega         string  `csv:"vega"`
	Rho          string  `csv:"rho"`
	Bid          string  `csv:"bid"`
	Ask          string  `csv:"ask"`
	OpenInterest int64   `csv:"open_interest"`
	Volume       int64   `csv:"volume"`
}

func (dto *OptionQuoteDTO) ToModel() (*OptionQuote, error) {
	expiration, err := time.Parse("2006-01-02", dto.Expiration)
	if err != nil {
		return nil, fmt.Errorf("OptionQuoteDTO: ToModel: failed to parse expiration %q: %w", dto.Expiration, err)
	}

	quote := &OptionQuote{
		Underlying:   NewStockSymbol(dto.Underlying),
		Strike:       dto.Strike,
		Expiration:   expiration,
		OptionType:   OptionType(dto.OptionType),
		OpenInterest: dto.OpenInterest,
		Volume:       dto.Volume,
	}

	if quote.ImpliedVol, err = parseOptionalFloat(dto.ImpliedVol); err != nil {
		return nil, fmt.Errorf("OptionQuoteDTO: ToModel: implied_vol: %w", err)
	}

	if quote.Bid, err = parseOptionalFloat(dto.Bid); err != nil {
		return nil, fmt.Errorf("OptionQuoteDTO: ToModel: bid: %w", err)
	}

	if quote.Ask, err = parseOptionalFloat(dto.Ask); err != nil {
		return nil, fmt.Errorf("OptionQuoteDTO: ToModel: ask: %w", err)
	}

	greeks, err := parseOptionalGreeks(dto)
	if err != nil {
		return nil, fmt.Errorf("OptionQuoteDTO: ToModel: %w", err)
	}

	quote.Greeks = greeks

	if err := quote.Validate(); err != nil {
		return nil, fmt.Errorf("OptionQuoteDTO: ToModel: %w", err)
	}

	return quote, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}

	var v float64
	if _, err := fmt.Sscanf(s, "%f", &v); err != nil {
		return nil, fmt.Errorf("invalid float %q: %w", s, err)
	}

	return &v, nil
}

func parseOptionalGreeks(dto *OptionQuoteDTO) (*Greeks, error) {
	// Greeks travel as a block: delta present means the feed computed them.
	if dto.Delta == "" {
		return nil, nil
	}

	fields := []struct {
		name string
		raw  string
	}{
		{"delta", dto.Delta},
		{"gamma", dto.Gamma},
		{"theta", dto.Theta},
		{"vega", dto.Vega},
		{"rho", dto.Rho},
	}

	parsed := make([]float64, len(fields))
	for i, f := range fields {
		if f.raw == "" {
			continue
		}

		v, err := parseOptionalFloat(f.raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}

		parsed[i] = *v
	}

	return &Greeks{
		Delta: parsed[0],
		Gamma: parsed[1],
		Theta: parsed[2],
		Vega:  parsed[3],
		Rho:   parsed[4],
	}, nil
}

func (q *OptionQuote) ToDTO() *OptionQuoteDTO {
	dto := &OptionQuoteDTO{
		Underlying:   q.Underlying.String(),
		Strike:       q.Strike,
		Expiration:   q.Expiration.Format("2006-01-02"),
		OptionType:   string(q.OptionType),
		OpenInterest: q.OpenInterest,
		Volume:       q.Volume,
	}

	if q.ImpliedVol != nil {
		dto.ImpliedVol = fmt.Sprintf("%v", *q.ImpliedVol)
	}

	if q.Bid != nil {
		dto.Bid = fmt.Sprintf("%v", *q.Bid)
	}

	if q.Ask != nil {
		dto.Ask = fmt.Sprintf("%v", *q.Ask)
	}

	if q.Greeks != nil {
		dto.Delta = fmt.Sprintf("%v", q.Greeks.Delta)
		dto.Gamma = fmt.Sprintf("%v", q.Greeks.Gamma)
		dto.Theta = fmt.Sprintf("%v", q.Greeks.Theta)
		dto.Vega = fmt.Sprintf("%v", q.Greeks.Vega)
		dto.Rho = fmt.Sprintf("%v", q.Greeks.Rho)
	}

	return dto
}
