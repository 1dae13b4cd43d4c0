package mail

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/d60-Lab/gin-blog/config"
)

func TestRender(t *testing.T) {
	msg := Message{
		From:    "a@example.com",
		To:      []string{"b@example.com", "c@example.com"},
		Subject: "Zoë recommends you read Go",
		Body:    "line one\nline two",
	}
	out := string(Render(msg, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))

	assert.Contains(t, out, "From: a@example.com\r\n")
	assert.Contains(t, out, "To: b@example.com, c@example.com\r\n")
	assert.Contains(t, out, "Subject: =?utf-8?q?")
	assert.Contains(t, out, "Date: Tue, 02 Jan 2024 03:04:05 +0000\r\n")
	assert.True(t, strings.HasSuffix(out, "\r\n\r\nline one\r\nline two"))
}

func TestNewSender(t *testing.T) {
	s, err := NewSender(config.MailConfig{Backend: "console"})
	require.NoError(t, err)
	assert.IsType(t, ConsoleSender{}, s)

	s, err = NewSender(config.MailConfig{Backend: "smtp", Host: "smtp.example.com", Port: 25})
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, s)

	_, err = NewSender(config.MailConfig{Backend: "smtp"})
	assert.Error(t, err)

	_, err = NewSender(config.MailConfig{Backend: "fax"})
	assert.Error(t, err)
}

func TestQueue_DeliversAndDrains(t *testing.T) {
	defer goleak.VerifyNone(t)

	outbox := &Outbox{}
	q := NewQueue(outbox, 16)
	stop := q.Start(3)

	for i := 0; i < 10; i++ {
		require.NoError(t, q.Send(context.Background(), Message{To: []string{"x@example.com"}, Subject: "s"}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, stop(ctx))

	assert.Len(t, outbox.Messages(), 10)
	sent, failed := q.Stats()
	assert.Equal(t, int64(10), sent)
	assert.Equal(t, int64(0), failed)

	assert.ErrorIs(t, q.Send(context.Background(), Message{}), ErrQueueClosed)
	// 重复停止不应 panic
	require.NoError(t, stop(context.Background()))
}

type blockingSender struct {
	release chan struct{}
}

func (b *blockingSender) Send(context.Context, Message) error {
	<-b.release
	return nil
}

func TestQueue_Full(t *testing.T) {
	defer goleak.VerifyNone(t)

	bs := &blockingSender{release: make(chan struct{})}
	q := NewQueue(bs, 1)
	stop := q.Start(1)

	// 第一封被 worker 取走并阻塞，第二封占满缓冲
	require.NoError(t, q.Send(context.Background(), Message{}))
	require.Eventually(t, func() bool { return q.QueueLen() == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, q.Send(context.Background(), Message{}))
	assert.ErrorIs(t, q.Send(context.Background(), Message{}), ErrQueueFull)

	close(bs.release)
	require.NoError(t, stop(context.Background()))
}

func TestQueue_CountsFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewQueue(&Outbox{Err: errors.New("smtp down")}, 4)
	stop := q.Start(1)
	require.NoError(t, q.Send(context.Background(), Message{To: []string{"x@example.com"}}))
	require.NoError(t, stop(context.Background()))

	sent, failed := q.Stats()
	assert.Equal(t, int64(0), sent)
	assert.Equal(t, int64(1), failed)
}
