package services

import (
	"testing"

	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoCardOrderingAndReorder(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromoService(db)

	first, err := svc.CreateCard(&dto.PromoRequest{Title: "First", SortOrder: 0}, "admin-1")
	require.NoError(t, err)
	second, err := svc.CreateCard(&dto.PromoRequest{Title: "Second", SortOrder: 1}, "admin-1")
	require.NoError(t, err)

	cards, err := svc.ListCards()
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "First", cards[0].Title)

	require.NoError(t, svc.ReorderCards(&dto.ReorderRequest{
		IDs: []uuid.UUID{second.ID, first.ID},
	}))

	cards, err = svc.ListCards()
	require.NoError(t, err)
	assert.Equal(t, "Second", cards[0].Title)
	assert.Equal(t, "First", cards[1].Title)
}

func TestPromoValidation(t *testing.T) {
	svc := NewPromoService(newTestDB(t))

	_, err := svc.CreateCard(&dto.PromoRequest{}, "admin-1")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateCard(&dto.PromoRequest{Title: "Card", TargetType: "popup"}, "admin-1")
	assert.ErrorIs(t, err, ErrInvalidTarget)

	assert.ErrorIs(t, svc.ReorderCards(&dto.ReorderRequest{}), ErrEmptyReordering)
}

func TestHomePromosIndependentOfCards(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromoService(db)

	_, err := svc.CreateCard(&dto.PromoRequest{Title: "A Card"}, "admin-1")
	require.NoError(t, err)
	promo, err := svc.CreateHome(&dto.PromoRequest{Title: "A Home Promo"}, "admin-1")
	require.NoError(t, err)

	home, err := svc.ListHome()
	require.NoError(t, err)
	require.Len(t, home, 1)
	assert.Equal(t, promo.ID, home[0].ID)

	require.NoError(t, svc.DeleteHome(promo.ID))
	var count int64
	require.NoError(t, db.Model(&models.PromoCard{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
