package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkoroteev/herocards-backend/internal/models"
)

var (
	// ErrHeroNotFound signals a lookup for an absent catalog entry.
	ErrHeroNotFound = errors.New("hero card not found")
	// ErrHeroNotInCollection signals a removal of a hero the user does
	// not have.
	ErrHeroNotInCollection = errors.New("hero not in your list")
)

// PaginatedHeroCards is one page of the hero catalog.
type PaginatedHeroCards struct {
	HeroCards  []models.HeroCard `json:"hero_cards"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}

const heroCardColumns = `id, name, gender, intelligence, strength, speed, durability, power, combat, img`

func scanHeroCard(row interface{ Scan(...interface{}) error }) (*models.HeroCard, error) {
	hero := &models.HeroCard{}
	err := row.Scan(&hero.ID, &hero.Name, &hero.Gender, &hero.Intelligence,
		&hero.Strength, &hero.Speed, &hero.Durability, &hero.Power,
		&hero.Combat, &hero.Img)
	if err != nil {
		return nil, err
	}
	return hero, nil
}

// GetHeroCard looks a hero card up by id
func GetHeroCard(ctx context.Context, db *sql.DB, id int64) (*models.HeroCard, error) {
	hero, err := scanHeroCard(db.QueryRowContext(ctx, `
		SELECT `+heroCardColumns+` FROM heroes WHERE id = $1
	`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrHeroNotFound
		}
		return nil, err
	}
	return hero, nil
}

// ListHeroCards returns one page of the hero catalog ordered by id
func ListHeroCards(ctx context.Context, db *sql.DB, skip, limit int) (*PaginatedHeroCards, error) {
	skip, limit = clampPage(skip, limit)

	rows, err := db.QueryContext(ctx, `
		SELECT `+heroCardColumns+` FROM heroes ORDER BY id OFFSET $1 LIMIT $2
	`, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	heroes := []models.HeroCard{}
	for rows.Next() {
		hero, err := scanHeroCard(rows)
		if err != nil {
			return nil, err
		}
		heroes = append(heroes, *hero)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM heroes`).Scan(&total); err != nil {
		return nil, err
	}

	page, totalPages := paginate(total, skip, limit)
	return &PaginatedHeroCards{
		HeroCards:  heroes,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// AddHeroToUser puts heroID into the user's collection. Adding a hero
// the user already has is a no-op success: ON CONFLICT DO NOTHING plus
// the UNIQUE(user_id, hero_id) constraint guarantee a single row per
// pair. The existence check and the insert run in one transaction so a
// failure leaves no partial row behind.
func AddHeroToUser(ctx context.Context, db *sql.DB, userID, heroID int64) (*models.HeroCard, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	hero, err := scanHeroCard(tx.QueryRowContext(ctx, `
		SELECT `+heroCardColumns+` FROM heroes WHERE id = $1
	`, heroID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrHeroNotFound
		}
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users_heroes (user_id, hero_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, hero_id) DO NOTHING
	`, userID, heroID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return hero, nil
}

// RemoveHeroFromUser deletes the (user, hero) pair. Removing a pair
// that does not exist fails with ErrHeroNotInCollection so callers can
// tell nothing was removed.
func RemoveHeroFromUser(ctx context.Context, db *sql.DB, userID, heroID int64) error {
	res, err := db.ExecContext(ctx, `
		DELETE FROM users_heroes WHERE user_id = $1 AND hero_id = $2
	`, userID, heroID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrHeroNotInCollection
	}

	return nil
}

// ListUserHeroes returns every hero card in the user's collection
func ListUserHeroes(ctx context.Context, db *sql.DB, userID int64) ([]models.HeroCard, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT h.id, h.name, h.gender, h.intelligence, h.strength, h.speed,
		       h.durability, h.power, h.combat, h.img
		FROM users_heroes uh
		JOIN heroes h ON h.id = uh.hero_id
		WHERE uh.user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	heroes := []models.HeroCard{}
	for rows.Next() {
		hero, err := scanHeroCard(rows)
		if err != nil {
			return nil, err
		}
		heroes = append(heroes, *hero)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return heroes, nil
}
