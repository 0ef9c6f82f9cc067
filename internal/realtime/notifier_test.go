package realtime_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/realtime"
)

func TestPublish_Command(t *testing.T) {
	db, mock := redismock.NewClientMock()
	n := realtime.New(db)

	mock.Regexp().ExpectPublish("asset:equipment", `"resource":"equipment".*"action":"updated"`).SetVal(1)

	err := n.Publish(context.Background(), "equipment", "updated", "abc")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublish_Delivery(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := cli.Subscribe(ctx, "asset:vehicle")
	defer sub.Close()
	_, err = sub.Receive(ctx) // wait for the subscription to register
	require.NoError(t, err)

	n := realtime.New(cli)
	require.NoError(t, n.Publish(ctx, "vehicle", "created", "v-1"))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var ev realtime.Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
	assert.Equal(t, "vehicle", ev.Resource)
	assert.Equal(t, "created", ev.Action)
	assert.Equal(t, "v-1", ev.ID)
	assert.False(t, ev.At.IsZero())
}
