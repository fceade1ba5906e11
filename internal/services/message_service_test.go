package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studentlife/taskboard/internal/store"
)

func TestSendMessage_Validation(t *testing.T) {
	env := newTestEnv(t)
	jo := env.createStaff(t, "jo@x.com", "Jo")

	_, err := env.msgSvc.SendMessage(store.SeedAdminID, jo.ID, "   ", nil)
	require.ErrorIs(t, err, ErrMessageArgsRequired)

	_, err = env.msgSvc.SendMessage("", jo.ID, "hello", nil)
	require.ErrorIs(t, err, ErrMessageArgsRequired)

	_, err = env.msgSvc.SendMessage(store.SeedAdminID, "", "hello", nil)
	require.ErrorIs(t, err, ErrMessageArgsRequired)
}

func TestSendMessage_TrimsBodyAndKeepsTaskTag(t *testing.T) {
	env := newTestEnv(t)
	jo := env.createStaff(t, "jo@x.com", "Jo")
	task := env.createTask(t, "Hang banners")

	msg, err := env.msgSvc.SendMessage(jo.ID, store.SeedAdminID, "  need a ladder for this one  ", &task.ID)
	require.NoError(t, err)
	require.Equal(t, "need a ladder for this one", msg.Body)
	require.NotNil(t, msg.TaskID)
	require.Equal(t, task.ID, *msg.TaskID)
	require.NotEmpty(t, msg.ID)
}

func TestConversation_BothDirectionsOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	jo := env.createStaff(t, "jo@x.com", "Jo")
	sam := env.createStaff(t, "sam@x.com", "Sam")

	_, err := env.msgSvc.SendMessage(store.SeedAdminID, jo.ID, "first", nil)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = env.msgSvc.SendMessage(jo.ID, store.SeedAdminID, "second", nil)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	// Noise from an unrelated pair must not leak into the thread.
	_, err = env.msgSvc.SendMessage(sam.ID, store.SeedAdminID, "unrelated", nil)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = env.msgSvc.SendMessage(store.SeedAdminID, jo.ID, "third", nil)
	require.NoError(t, err)

	thread, err := env.msgSvc.Conversation(jo.ID, store.SeedAdminID)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	require.Equal(t, "first", thread[0].Body)
	require.Equal(t, "second", thread[1].Body)
	require.Equal(t, "third", thread[2].Body)

	// Party order does not matter.
	reversed, err := env.msgSvc.Conversation(store.SeedAdminID, jo.ID)
	require.NoError(t, err)
	require.Equal(t, thread, reversed)
}

func TestConversation_BlankPartyYieldsEmptyThread(t *testing.T) {
	env := newTestEnv(t)

	thread, err := env.msgSvc.Conversation("", store.SeedAdminID)
	require.NoError(t, err)
	require.Empty(t, thread)

	thread, err = env.msgSvc.Conversation(store.SeedAdminID, "user-ghost")
	require.NoError(t, err)
	require.Empty(t, thread)
}

func TestAdminID(t *testing.T) {
	env := newTestEnv(t)

	id, err := env.msgSvc.AdminID()
	require.NoError(t, err)
	require.Equal(t, store.SeedAdminID, id)
}

func TestAdminConversations(t *testing.T) {
	env := newTestEnv(t)

	summaries, err := env.msgSvc.AdminConversations()
	require.NoError(t, err)
	require.Empty(t, summaries)

	jo := env.createStaff(t, "jo@x.com", "Jo")
	sam := env.createStaff(t, "sam@x.com", "Sam")
	task := env.createTask(t, "Restock supplies")

	_, err = env.msgSvc.SendMessage(jo.ID, store.SeedAdminID, "out of tape", &task.ID)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = env.msgSvc.SendMessage(sam.ID, store.SeedAdminID, "keys returned", nil)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = env.msgSvc.SendMessage(store.SeedAdminID, jo.ID, "ordering more", nil)
	require.NoError(t, err)

	summaries, err = env.msgSvc.AdminConversations()
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Jo's thread saw the latest activity, so it sorts first and carries
	// the admin's reply as its last message.
	require.Equal(t, jo.ID, summaries[0].UserID)
	require.Equal(t, "Jo", summaries[0].FullName)
	require.Equal(t, "jo@x.com", summaries[0].Email)
	require.Equal(t, "ordering more", summaries[0].LastMessage)
	require.NotNil(t, summaries[0].LastAt)

	require.Equal(t, sam.ID, summaries[1].UserID)
	require.Equal(t, "keys returned", summaries[1].LastMessage)
}

func TestAdminConversations_DeletedCounterparty(t *testing.T) {
	env := newTestEnv(t)
	jo := env.createStaff(t, "jo@x.com", "Jo")

	_, err := env.msgSvc.SendMessage(jo.ID, store.SeedAdminID, "before leaving", nil)
	require.NoError(t, err)
	require.NoError(t, env.directory.DeleteStaffMember(jo.ID))

	// The thread survives the account; the summary falls back to a
	// placeholder name.
	summaries, err := env.msgSvc.AdminConversations()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, jo.ID, summaries[0].UserID)
	require.Equal(t, "Unknown", summaries[0].FullName)
	require.Equal(t, "before leaving", summaries[0].LastMessage)
}
