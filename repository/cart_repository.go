package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lotocart/database"
	"lotocart/domain/entities"
	"lotocart/domain/interfaces"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrStaleCart is returned when a save carries a version that no longer
// matches the stored row. The caller must re-read the session and retry.
var ErrStaleCart = errors.New("cart version is stale")

// CartRepository implements session cart persistence on Postgres. The whole
// cart is stored as one JSONB document per session; the version column backs
// optimistic concurrency.
type CartRepository struct {
	db *database.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *database.DB) interfaces.CartRepository {
	return &CartRepository{db: db}
}

// Create creates and persists an empty cart under a fresh session id
func (r *CartRepository) Create(ctx context.Context) (*entities.Cart, error) {
	cart := entities.NewCart(uuid.New().String())
	cart.Version = 1

	state, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart state: %w", err)
	}

	query := `
		INSERT INTO cart_sessions (session_id, state, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.Exec(ctx, query, cart.SessionID, state, cart.Version, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart session: %w", err)
	}

	return cart, nil
}

// Get retrieves the cart for a session, or nil when the session is unknown
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*entities.Cart, error) {
	query := `
		SELECT state, version
		FROM cart_sessions
		WHERE session_id = $1`

	var state []byte
	var version int64
	err := r.db.QueryRow(ctx, query, sessionID).Scan(&state, &version)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart session: %w", err)
	}

	var cart entities.Cart
	if err := json.Unmarshal(state, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart state: %w", err)
	}
	cart.Version = version

	return &cart, nil
}

// Save persists the cart, bumping its version. A save whose in-memory version
// does not match the stored row fails with ErrStaleCart so a late response
// cannot overwrite newer session state.
func (r *CartRepository) Save(ctx context.Context, cart *entities.Cart) error {
	state, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart state: %w", err)
	}

	query := `
		UPDATE cart_sessions
		SET state = $1, version = version + 1, updated_at = $2
		WHERE session_id = $3 AND version = $4`

	tag, err := r.db.Exec(ctx, query, state, cart.UpdatedAt, cart.SessionID, cart.Version)
	if err != nil {
		return fmt.Errorf("failed to save cart session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: session %s version %d", ErrStaleCart, cart.SessionID, cart.Version)
	}

	cart.Version++
	return nil
}

// Delete removes a session's cart entirely
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	query := `DELETE FROM cart_sessions WHERE session_id = $1`

	if _, err := r.db.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to delete cart session: %w", err)
	}
	return nil
}
