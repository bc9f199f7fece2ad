package services

import (
	"testing"

	"bookswap/db"
	"bookswap/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequestSelf(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t)

	_, err := NewFriendService().SendRequest(user.ID, user.ID)
	assert.ErrorIs(t, err, ErrSelfFriend)
}

func TestSendRequestUnknownRecipient(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t)

	_, err := NewFriendService().SendRequest(user.ID, 99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

// Сценарий B: повторная заявка в любом направлении отклоняется,
// в таблице остается ровно одна запись для пары
func TestSendRequestDuplicate(t *testing.T) {
	setupTestDB(t)
	first := seedUser(t)
	second := seedUser(t)
	friendService := NewFriendService()

	_, err := friendService.SendRequest(first.ID, second.ID)
	require.NoError(t, err)

	_, err = friendService.SendRequest(first.ID, second.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = friendService.SendRequest(second.ID, first.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	var count int64
	require.NoError(t, db.ORM.Model(&models.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

// Индекс по неупорядоченной паре держит гонку встречных заявок: вставка
// обратного ребра, которую сделал бы проигравший после пустого SELECT,
// отбивается на уровне БД
func TestFriendshipPairIndexUnordered(t *testing.T) {
	setupTestDB(t)
	first := seedUser(t)
	second := seedUser(t)

	edge := models.Friendship{
		User1:  first.ID,
		User2:  second.ID,
		Status: models.FriendshipStatusPending,
	}
	require.NoError(t, db.ORM.Create(&edge).Error)

	reverse := models.Friendship{
		User1:  second.ID,
		User2:  first.ID,
		Status: models.FriendshipStatusPending,
	}
	assert.Error(t, db.ORM.Create(&reverse).Error)

	duplicate := models.Friendship{
		User1:  first.ID,
		User2:  second.ID,
		Status: models.FriendshipStatusPending,
	}
	assert.Error(t, db.ORM.Create(&duplicate).Error)

	var count int64
	require.NoError(t, db.ORM.Model(&models.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRespondOnlyRecipient(t *testing.T) {
	setupTestDB(t)
	initiator := seedUser(t)
	recipient := seedUser(t)
	stranger := seedUser(t)
	friendService := NewFriendService()

	friendship, err := friendService.SendRequest(initiator.ID, recipient.ID)
	require.NoError(t, err)

	err = friendService.RespondToRequest(initiator.ID, friendship.ID, models.FriendshipStatusAccepted)
	assert.ErrorIs(t, err, ErrNotAuthorized)
	err = friendService.RespondToRequest(stranger.ID, friendship.ID, models.FriendshipStatusAccepted)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	err = friendService.RespondToRequest(recipient.ID, friendship.ID, "maybe")
	assert.ErrorIs(t, err, ErrValidation)
	err = friendService.RespondToRequest(recipient.ID, 99999, models.FriendshipStatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)
}

// После принятия дружба симметрична: обе стороны видят друг друга
func TestAcceptedFriendshipSymmetric(t *testing.T) {
	setupTestDB(t)
	initiator := seedUser(t)
	recipient := seedUser(t)
	friendService := NewFriendService()

	friendship, err := friendService.SendRequest(initiator.ID, recipient.ID)
	require.NoError(t, err)
	require.NoError(t, friendService.RespondToRequest(recipient.ID, friendship.ID, models.FriendshipStatusAccepted))

	initiatorFriends, err := friendService.ListFriends(initiator.ID)
	require.NoError(t, err)
	require.Len(t, initiatorFriends, 1)
	require.NotNil(t, initiatorFriends[0].Profile)
	assert.Equal(t, recipient.ID, initiatorFriends[0].Profile.ID)

	recipientFriends, err := friendService.ListFriends(recipient.ID)
	require.NoError(t, err)
	require.Len(t, recipientFriends, 1)
	require.NotNil(t, recipientFriends[0].Profile)
	assert.Equal(t, initiator.ID, recipientFriends[0].Profile.ID)
}

func TestRespondNotPendingFriendship(t *testing.T) {
	setupTestDB(t)
	initiator := seedUser(t)
	recipient := seedUser(t)
	friendService := NewFriendService()

	friendship, err := friendService.SendRequest(initiator.ID, recipient.ID)
	require.NoError(t, err)
	require.NoError(t, friendService.RespondToRequest(recipient.ID, friendship.ID, models.FriendshipStatusAccepted))

	err = friendService.RespondToRequest(recipient.ID, friendship.ID, models.FriendshipStatusAccepted)
	assert.ErrorIs(t, err, ErrInvalidState)
}

// Повторная заявка после отказа разрешена и заменяет старую запись
func TestReRequestAfterDecline(t *testing.T) {
	setupTestDB(t)
	initiator := seedUser(t)
	recipient := seedUser(t)
	friendService := NewFriendService()

	friendship, err := friendService.SendRequest(initiator.ID, recipient.ID)
	require.NoError(t, err)
	require.NoError(t, friendService.RespondToRequest(recipient.ID, friendship.ID, models.FriendshipStatusDeclined))

	renewed, err := friendService.SendRequest(initiator.ID, recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipStatusPending, renewed.Status)

	var count int64
	require.NoError(t, db.ORM.Model(&models.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRemoveFriend(t *testing.T) {
	setupTestDB(t)
	initiator := seedUser(t)
	recipient := seedUser(t)
	stranger := seedUser(t)
	friendService := NewFriendService()

	friendship, err := friendService.SendRequest(initiator.ID, recipient.ID)
	require.NoError(t, err)
	require.NoError(t, friendService.RespondToRequest(recipient.ID, friendship.ID, models.FriendshipStatusAccepted))

	err = friendService.RemoveFriend(stranger.ID, friendship.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	require.NoError(t, friendService.RemoveFriend(initiator.ID, friendship.ID))

	var count int64
	require.NoError(t, db.ORM.Model(&models.Friendship{}).Count(&count).Error)
	assert.Zero(t, count)

	err = friendService.RemoveFriend(initiator.ID, friendship.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPendingIncoming(t *testing.T) {
	setupTestDB(t)
	recipient := seedUser(t)
	first := seedUser(t)
	second := seedUser(t)
	friendService := NewFriendService()

	_, err := friendService.SendRequest(first.ID, recipient.ID)
	require.NoError(t, err)
	_, err = friendService.SendRequest(second.ID, recipient.ID)
	require.NoError(t, err)

	// Исходящая заявка не должна попасть во входящие
	outgoing := seedUser(t)
	_, err = friendService.SendRequest(recipient.ID, outgoing.ID)
	require.NoError(t, err)

	incoming, err := friendService.ListPendingIncoming(recipient.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	for _, request := range incoming {
		assert.Equal(t, recipient.ID, request.User2)
		require.NotNil(t, request.Profile)
	}
}
