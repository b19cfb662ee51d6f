package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskflow-backend/models"
)

func TestNotificationList_UnreadFilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	n := NewNotificationService(db)
	user := newTestUser(t, db, "ana")

	n.Notify(user.ID, models.NotificationPointsEarned, "Pontos", "mais 5", nil)
	n.Notify(user.ID, models.NotificationLevelUp, "Nivel", "nivel 2", nil)

	all, err := n.List(user.ID, false, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, models.NotificationLevelUp, all[0].Type, "newest first")

	require.NoError(t, n.MarkRead(user.ID, all[0].ID))

	unread, err := n.List(user.ID, true, 10)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, models.NotificationPointsEarned, unread[0].Type)
}

func TestNotificationMarkRead_OwnerScoped(t *testing.T) {
	db := newTestDB(t)
	n := NewNotificationService(db)
	owner := newTestUser(t, db, "bruno")
	other := newTestUser(t, db, "clara")

	n.Notify(owner.ID, models.NotificationBadgeEarned, "Badge", "novo badge", nil)
	list, err := n.List(owner.ID, false, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	err = n.MarkRead(other.ID, list[0].ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	list, err = n.List(owner.ID, true, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1, "someone else's mark-read must not land")
}

func TestNotificationMarkAllRead(t *testing.T) {
	db := newTestDB(t)
	n := NewNotificationService(db)
	user := newTestUser(t, db, "dani")

	for i := 0; i < 3; i++ {
		n.Notify(user.ID, models.NotificationPointsEarned, "Pontos", "ping", nil)
	}
	require.NoError(t, n.MarkAllRead(user.ID))

	unread, err := n.List(user.ID, true, 10)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestNotificationPayloadIsJSON(t *testing.T) {
	db := newTestDB(t)
	n := NewNotificationService(db)
	user := newTestUser(t, db, "edu")

	n.NotifyLevelUp(user.ID, &AwardResult{Level: 3, LevelName: "Colaborador", LeveledUp: true})

	list, err := n.List(user.ID, false, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Contains(t, list[0].Payload, `"level_name":"Colaborador"`)
}
