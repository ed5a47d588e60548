package messaging

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetWriterConcurrentTopics(t *testing.T) {
	producer := NewKafkaProducer([]string{"localhost:9092"})
	defer producer.Close()

	// A merge publish and a checkout publish can resolve writers from two
	// request goroutines at the same time.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			producer.getWriter(TopicCartMerged)
		}()
		go func() {
			defer wg.Done()
			producer.getWriter(TopicCheckoutCompleted)
		}()
	}
	wg.Wait()

	assert.Len(t, producer.writers, 2)
}

func TestGetWriterReturnsSameWriterPerTopic(t *testing.T) {
	producer := NewKafkaProducer([]string{"localhost:9092"})
	defer producer.Close()

	first := producer.getWriter(TopicCartMerged)
	second := producer.getWriter(TopicCartMerged)

	assert.Same(t, first, second)
	assert.Equal(t, TopicCartMerged, first.Topic)
}
