package kafka

import (
	"RedBlack/internal/api/config"
	"time"

	"github.com/IBM/sarama"
)

// newSaramaConfig 统一初始化消费者组配置，位点在整批处理完成后手动提交
func newSaramaConfig(kafkaCfg config.KafkaConfig) *sarama.Config {
	c := sarama.NewConfig()

	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}

	c.Consumer.Return.Errors = true
	c.Consumer.Offsets.Initial = sarama.OffsetNewest

	c.Consumer.Offsets.AutoCommit.Enable = false

	// 未配置的项保留 sarama 默认值
	setSeconds(&c.Consumer.Group.Session.Timeout, kafkaCfg.Consumer.SessionTimeout)
	setSeconds(&c.Consumer.Group.Heartbeat.Interval, kafkaCfg.Consumer.HeartbeatInterval)
	setSeconds(&c.Consumer.Group.Rebalance.Timeout, kafkaCfg.Consumer.RebalanceTimeout)
	setSeconds(&c.Consumer.MaxProcessingTime, kafkaCfg.Consumer.MaxProcessingTime)

	return c
}

func setSeconds(d *time.Duration, seconds int) {
	if seconds > 0 {
		*d = time.Duration(seconds) * time.Second
	}
}
