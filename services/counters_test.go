package services

import (
	"testing"

	"bookswap/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingCountValidation(t *testing.T) {
	setupTestDB(t)
	counterService := NewCounterService()

	_, err := counterService.PendingCount(0, CounterTypeTradeRequests)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = counterService.PendingCount(1, CounterType("likes"))
	assert.ErrorIs(t, err, ErrValidation)
}

// Счетчики пересчитываются из исходных таблиц, поэтому любая мутация
// заявок сразу видна без отдельной инвалидации
func TestTradeRequestsCounter(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t)
	firstRequester := seedUser(t)
	secondRequester := seedUser(t)
	tradeService := NewTradeService()
	counterService := NewCounterService()

	offer := seedOffer(t, owner.ID)
	firstBook := seedBook(t, firstRequester.ID)
	secondBook := seedBook(t, secondRequester.ID)

	count, err := counterService.PendingCount(owner.ID, CounterTypeTradeRequests)
	require.NoError(t, err)
	assert.Zero(t, count)

	winner, err := tradeService.RequestTrade(firstRequester.ID, offer.ID, firstBook.ID)
	require.NoError(t, err)
	_, err = tradeService.RequestTrade(secondRequester.ID, offer.ID, secondBook.ID)
	require.NoError(t, err)

	count, err = counterService.PendingCount(owner.ID, CounterTypeTradeRequests)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// Заявки считаются у владельца предложения, а не у заявителя
	count, err = counterService.PendingCount(firstRequester.ID, CounterTypeTradeRequests)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Принятие гасит и победителя, и автоматически отклоненных
	require.NoError(t, tradeService.RespondToRequest(owner.ID, winner.ID, models.RequestStatusAccepted))

	count, err = counterService.PendingCount(owner.ID, CounterTypeTradeRequests)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTradeRequestsCounterAfterWithdraw(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t)
	requester := seedUser(t)
	tradeService := NewTradeService()
	counterService := NewCounterService()

	offer := seedOffer(t, owner.ID)
	book := seedBook(t, requester.ID)
	_, err := tradeService.RequestTrade(requester.ID, offer.ID, book.ID)
	require.NoError(t, err)

	require.NoError(t, tradeService.WithdrawOffer(owner.ID, offer.ID))

	count, err := counterService.PendingCount(owner.ID, CounterTypeTradeRequests)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFriendRequestsCounter(t *testing.T) {
	setupTestDB(t)
	recipient := seedUser(t)
	initiator := seedUser(t)
	friendService := NewFriendService()
	counterService := NewCounterService()

	friendship, err := friendService.SendRequest(initiator.ID, recipient.ID)
	require.NoError(t, err)

	count, err := counterService.PendingCount(recipient.ID, CounterTypeFriendRequests)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Исходящая заявка инициатору не считается
	count, err = counterService.PendingCount(initiator.ID, CounterTypeFriendRequests)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, friendService.RespondToRequest(recipient.ID, friendship.ID, models.FriendshipStatusAccepted))

	count, err = counterService.PendingCount(recipient.ID, CounterTypeFriendRequests)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAllCounters(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t)
	requester := seedUser(t)
	tradeService := NewTradeService()
	counterService := NewCounterService()

	offer := seedOffer(t, owner.ID)
	book := seedBook(t, requester.ID)
	_, err := tradeService.RequestTrade(requester.ID, offer.ID, book.ID)
	require.NoError(t, err)

	_, err = NewFriendService().SendRequest(requester.ID, owner.ID)
	require.NoError(t, err)

	counters, err := counterService.AllCounters(owner.ID)
	require.NoError(t, err)
	require.Len(t, counters, 2)
	assert.EqualValues(t, 1, counters[CounterTypeTradeRequests])
	assert.EqualValues(t, 1, counters[CounterTypeFriendRequests])
}
