package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"ratefeed/internal/domain"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RateRepository struct {
	pool *pgxpool.Pool
}

type rateRow struct {
	QuoteCode string  `json:"quote_code"`
	BaseIso   string  `json:"base_iso"`
	Rate      float64 `json:"rate"`
	Name      string  `json:"name"`
}

// PutRates upserts rates by pair in one transaction. When rates hold several
// records for the same pair, the last one is stored.
func (r *RateRepository) PutRates(ctx context.Context, rates []domain.CurrencyRate) error {
	if len(rates) == 0 {
		return nil
	}

	payloadJSON, err := json.Marshal(dedupeByPair(rates))
	if err != nil {
		return fmt.Errorf("failed to marshal rates: %w", err)
	}

	const q = `
		with

		-- step 1: parsing input
		input_rows as (
		  select * from json_to_recordset($1::json)
		  as r(quote_code text, base_iso text, rate double precision, name text)
		)

		-- step 2: upserting by pair
		insert into currency_rates(quote_code, base_iso, rate, name, updated_at)
		select quote_code, base_iso, rate, coalesce(name, ''), now() from input_rows
		on conflict (quote_code, base_iso) do update
		set rate = excluded.rate, name = excluded.name, updated_at = now();
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, q, json.RawMessage(payloadJSON)); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *RateRepository) KnownCodes(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `select code from currencies order by code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query known codes: %w", err)
	}
	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan known codes: %w", err)
	}
	return codes, nil
}

func (r *RateRepository) Lookup(ctx context.Context, base string, quote string) (domain.CurrencyRate, error) {
	const q = `
		select quote_code, base_iso, rate, name
		from currency_rates
		where base_iso = $1 and quote_code = $2;
	`

	var rate domain.CurrencyRate
	if err := r.pool.QueryRow(ctx, q, base, quote).Scan(
		&rate.QuoteCode,
		&rate.BaseIso,
		&rate.Rate,
		&rate.Name,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CurrencyRate{}, domain.ErrRateNotFound
		}
		return domain.CurrencyRate{}, fmt.Errorf("failed to select rate for pair %q/%q: %w", base, quote, err)
	}
	return rate, nil
}

func (r *RateRepository) ListByQuote(ctx context.Context, quote string) ([]domain.CurrencyRate, error) {
	const q = `
		select quote_code, base_iso, rate, name
		from currency_rates
		where quote_code = $1
		order by base_iso;
	`

	rows, err := r.pool.Query(ctx, q, quote)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates in %q: %w", quote, err)
	}
	defer rows.Close()

	rates := make([]domain.CurrencyRate, 0, 64)
	for rows.Next() {
		var rate domain.CurrencyRate
		if err = rows.Scan(&rate.QuoteCode, &rate.BaseIso, &rate.Rate, &rate.Name); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		rates = append(rates, rate)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rates: %w", err)
	}
	return rates, nil
}

type priceChangeRow struct {
	Code      string  `json:"code"`
	ChangePct float64 `json:"change_pct"`
}

func (r *RateRepository) PutPriceChanges(ctx context.Context, quote string, changes map[string]float64) error {
	if len(changes) == 0 {
		return nil
	}
	payload := make([]priceChangeRow, 0, len(changes))
	for code, pct := range changes {
		payload = append(payload, priceChangeRow{Code: code, ChangePct: pct})
	}
	sort.Slice(payload, func(i, j int) bool { return payload[i].Code < payload[j].Code })

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal price changes: %w", err)
	}

	const q = `
		insert into price_changes(code, quote, change_pct, updated_at)
		select ir.code, $2, ir.change_pct, now()
		from json_to_recordset($1::json) as ir(code text, change_pct double precision)
		on conflict (code, quote) do update
		set change_pct = excluded.change_pct, updated_at = now();
	`
	if _, err = r.pool.Exec(ctx, q, json.RawMessage(payloadJSON), quote); err != nil {
		return fmt.Errorf("failed to store price changes in %q: %w", quote, err)
	}
	return nil
}

// dedupeByPair keeps the last record of every pair, in first-seen order.
func dedupeByPair(rates []domain.CurrencyRate) []rateRow {
	index := make(map[domain.RatePair]int, len(rates))
	rows := make([]rateRow, 0, len(rates))
	for _, rate := range rates {
		row := rateRow{QuoteCode: rate.QuoteCode, BaseIso: rate.BaseIso, Rate: rate.Rate, Name: rate.Name}
		if i, ok := index[rate.Pair()]; ok {
			rows[i] = row
			continue
		}
		index[rate.Pair()] = len(rows)
		rows = append(rows, row)
	}
	return rows
}

func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}
