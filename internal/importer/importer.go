package importer

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dkoroteev/herocards-backend/internal/models"
)

// Column names of the superhero dataset.
const (
	colName         = "name"
	colGender       = "appearance.gender"
	colIntelligence = "powerstats.intelligence"
	colStrength     = "powerstats.strength"
	colSpeed        = "powerstats.speed"
	colDurability   = "powerstats.durability"
	colPower        = "powerstats.power"
	colCombat       = "powerstats.combat"
	colImg          = "image.url"
)

// ParseHeroes reads hero cards from the superhero CSV export. Columns
// are located by header name, so column order does not matter.
// Non-numeric powerstat values (the dataset uses "-" and blanks) parse
// as 0 rather than failing the row.
func ParseHeroes(r io.Reader) ([]models.HeroCard, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	if _, ok := cols[colName]; !ok {
		return nil, fmt.Errorf("missing required column %q", colName)
	}

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}
	stat := func(record []string, name string) int {
		n, err := strconv.Atoi(field(record, name))
		if err != nil {
			return 0
		}
		return n
	}

	heroes := []models.HeroCard{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(heroes)+2, err)
		}

		heroes = append(heroes, models.HeroCard{
			Name:         field(record, colName),
			Gender:       field(record, colGender),
			Intelligence: stat(record, colIntelligence),
			Strength:     stat(record, colStrength),
			Speed:        stat(record, colSpeed),
			Durability:   stat(record, colDurability),
			Power:        stat(record, colPower),
			Combat:       stat(record, colCombat),
			Img:          field(record, colImg),
		})
	}

	return heroes, nil
}

// InsertHeroes persists the parsed catalog rows in one transaction so a
// failed import leaves the catalog untouched.
func InsertHeroes(ctx context.Context, db *sql.DB, heroes []models.HeroCard) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO heroes (name, gender, intelligence, strength, speed, durability, power, combat, img)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, hero := range heroes {
		_, err := stmt.ExecContext(ctx, hero.Name, hero.Gender, hero.Intelligence,
			hero.Strength, hero.Speed, hero.Durability, hero.Power, hero.Combat, hero.Img)
		if err != nil {
			return fmt.Errorf("insert %q: %w", hero.Name, err)
		}
	}

	return tx.Commit()
}
