package kafka

import (
	"RedBlack/internal/api/config"
	"context"
	log "log/slog"
	"sync"

	"github.com/IBM/sarama"
)

type consumer struct {
	name    string
	topic   string
	group   sarama.ConsumerGroup
	handler sarama.ConsumerGroupHandler
}

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	consumers []*consumer
}

// Handlers 各表的消费逻辑
type Handlers struct {
	Reactions *ReactionsHandler
	Ratings   *RatingsHandler
	Comments  *CommentsHandler
	Posts     *PostsHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, handlers Handlers) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	specs := []struct {
		name    string
		cfg     config.KafkaConsumerConfig
		handler sarama.ConsumerGroupHandler
	}{
		{"reaction", cfg.KafkaReactionConsumer, handlers.Reactions},
		{"rating", cfg.KafkaRatingConsumer, handlers.Ratings},
		{"comment", cfg.KafkaCommentConsumer, handlers.Comments},
		{"post", cfg.KafkaPostConsumer, handlers.Posts},
	}

	m := &ConsumerManager{}
	for _, spec := range specs {
		if spec.cfg.Topic == "" {
			log.Warn("kafka consumer topic not configured, skip", "consumer", spec.name)
			continue
		}
		group, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, spec.cfg.GroupID, saramaCfg)
		if err != nil {
			m.close()
			return nil, err
		}
		m.consumers = append(m.consumers, &consumer{
			name:    spec.name,
			topic:   spec.cfg.Topic,
			group:   group,
			handler: spec.handler,
		})
	}

	return m, nil
}

// Start 启动所有消费者，阻塞到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, c := range m.consumers {
		wg.Add(1)
		go func(c *consumer) {
			defer wg.Done()
			log.Info("kafka consumer started", "consumer", c.name, "topic", c.topic)
			for {
				if err := c.group.Consume(ctx, []string{c.topic}, c.handler); err != nil {
					log.Error("Error from consumer", "consumer", c.name, "err", err)
				}
				if ctx.Err() != nil {
					return
				}
			}
		}(c)

		go func(c *consumer) {
			for err := range c.group.Errors() {
				log.Error("kafka consumer group error", "consumer", c.name, "err", err)
			}
		}(c)
	}

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")
	wg.Wait()
	m.close()

	return nil
}

func (m *ConsumerManager) close() {
	for _, c := range m.consumers {
		if err := c.group.Close(); err != nil {
			log.Error("Failed to close consumer", "consumer", c.name, "err", err)
		}
	}
}
