package email

import (
	"context"
	"errors"

	"RentLink/internal/modules/notify/domain/entity"
	"RentLink/internal/modules/notify/infrastructure/mq"
	"RentLink/pkg/tenant"
)

// Publisher 把通知 id 投到邮件主题，由后台消费组异步发送
type Publisher struct {
	pub   mq.Publisher
	topic string
}

func NewPublisher(pub mq.Publisher, topic string) *Publisher {
	return &Publisher{pub: pub, topic: topic}
}

// Enqueue 消息体只带通知 uuid，租户随 header 传递，消费端据此重建作用域
func (p *Publisher) Enqueue(ctx context.Context, n *entity.Notification) error {
	if p == nil || p.pub == nil {
		return errors.New("email publisher is nil")
	}
	if n == nil || n.Uuid == "" {
		return errors.New("notification is empty")
	}
	s, err := tenant.FromOrError(ctx)
	if err != nil {
		return err
	}

	_, err = p.pub.Publish(ctx, mq.Message{
		Topic: p.topic,
		Key:   []byte(n.RecipientId), // 同一接收人进同一分区
		Value: []byte(n.Uuid),
		Headers: map[string]string{
			"tenant_id": s.TenantID,
		},
	})
	return err
}
