package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/couplet/internal/couplet/domain"
	"github.com/aussiebroadwan/couplet/internal/couplet/store"
)

type profilesRepo struct{ q querier }

const profileColumns = `id, display_name, avatar_url, avatar_blurhash, theme, email,
	couple_id, partner_id, created_at, updated_at`

func scanProfile(row interface{ Scan(dest ...any) error }) (domain.Profile, error) {
	var (
		p                    domain.Profile
		theme                string
		coupleID, partnerID  sql.NullString
		createdAt, updatedAt int64
	)
	err := row.Scan(
		&p.ID,
		&p.DisplayName,
		&p.AvatarURL,
		&p.AvatarBlurhash,
		&theme,
		&p.Email,
		&coupleID,
		&partnerID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	p.Theme = domain.Theme(theme)
	p.CoupleID = coupleID.String
	p.PartnerID = partnerID.String
	p.CreatedAt = fromUnixNano(createdAt)
	p.UpdatedAt = fromUnixNano(updatedAt)
	return p, nil
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.DisplayName,
		p.AvatarURL,
		p.AvatarBlurhash,
		string(p.Theme),
		p.Email,
		nullString(p.CoupleID),
		nullString(p.PartnerID),
		unixNano(p.CreatedAt),
		unixNano(p.UpdatedAt),
	)
	return mapUnique(err)
}

func (r *profilesRepo) GetProfile(ctx context.Context, id string) (domain.Profile, error) {
	return scanProfile(r.q.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id))
}

func (r *profilesRepo) UpdateProfile(ctx context.Context, id, displayName string, theme domain.Theme, now time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE profiles SET display_name = ?, theme = ?, updated_at = ?
		WHERE id = ?`,
		displayName, string(theme), unixNano(now), id,
	)
	if err != nil {
		return err
	}
	return expectOne(res, store.ErrNotFound)
}

func (r *profilesRepo) UpdateAvatar(ctx context.Context, id, url, blurhash string, now time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE profiles SET avatar_url = ?, avatar_blurhash = ?, updated_at = ?
		WHERE id = ?`,
		url, blurhash, unixNano(now), id,
	)
	if err != nil {
		return err
	}
	return expectOne(res, store.ErrNotFound)
}

func (r *profilesRepo) LinkProfile(ctx context.Context, id, coupleID, partnerID string, now time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE profiles SET couple_id = ?, partner_id = ?, updated_at = ?
		WHERE id = ? AND couple_id IS NULL`,
		coupleID, partnerID, unixNano(now), id,
	)
	if err != nil {
		return err
	}
	return expectOne(res, store.ErrConflict)
}
