package api

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const reportEventsTopic = "ecopath-report-events"

// ReportEvent - событие изменения отчёта, уходящее в Kafka для
// внешних потребителей (аналитика, аудит)
type ReportEvent struct {
	Type       string    `json:"type"` // report.created | entry.added
	ReportID   string    `json:"reportId"`
	EntryType  string    `json:"entryType,omitempty"` // calc | pathways | offset
	EntryID    string    `json:"entryId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher отправляет события отчётов в Kafka.
// Best-effort: отправка асинхронная, ошибки не влияют на ответ клиенту
type EventPublisher struct {
	writer    *kafka.Writer
	sentCount int64 // Счетчик отправленных сообщений
}

// NewEventPublisher создает publisher. При пустом списке брокеров
// возвращает no-op инстанс
func NewEventPublisher(brokers, username, password, caCert string) *EventPublisher {
	if brokers == "" {
		return &EventPublisher{}
	}

	writer := &kafka.Writer{
		Addr:      kafka.TCP(splitBrokers(brokers)...),
		Topic:     reportEventsTopic,
		Balancer:  &kafka.LeastBytes{}, // Балансировка по наименьшему количеству байт
		Async:     true,                // Асинхронная отправка, не блокируем запрос
		Transport: createKafkaTransport(username, password, caCert),
	}
	log.Printf("✅ Kafka producer подключен к %s (топик %s)", brokers, reportEventsTopic)

	return &EventPublisher{writer: writer}
}

// createKafkaTransport настраивает SASL/PLAIN и TLS (для Aiven и подобных)
func createKafkaTransport(username, password, caCert string) *kafka.Transport {
	if username == "" && password == "" && caCert == "" {
		return nil // Дефолтный transport без аутентификации
	}

	transport := &kafka.Transport{}

	if username != "" && password != "" {
		transport.SASL = plain.Mechanism{
			Username: username,
			Password: password,
		}
		log.Printf("🔐 Kafka: SASL/PLAIN аутентификация включена (username: %s)", username)
	}

	tlsConfig := &tls.Config{}
	if caCert != "" {
		caCertPool := x509.NewCertPool()
		if ok := caCertPool.AppendCertsFromPEM([]byte(caCert)); ok {
			tlsConfig.RootCAs = caCertPool
			log.Printf("🔒 Kafka: TLS с CA сертификатом включен")
		} else {
			log.Printf("⚠️ Kafka: не удалось распарсить CA сертификат, используем системные сертификаты")
		}
	}
	// SASL без TLS не бывает у managed-брокеров
	if transport.SASL != nil || caCert != "" {
		transport.TLS = tlsConfig
	}

	return transport
}

// splitBrokers парсит строку с брокерами (через запятую)
func splitBrokers(brokers string) []string {
	parts := strings.Split(strings.ReplaceAll(brokers, " ", ""), ",")
	var result []string
	for _, broker := range parts {
		if broker != "" {
			result = append(result, broker)
		}
	}
	return result
}

// Publish отправляет событие асинхронно, не блокируя HTTP-ответ
func (p *EventPublisher) Publish(event ReportEvent) {
	if p.writer == nil {
		return
	}

	go func() {
		payload, err := json.Marshal(event)
		if err != nil {
			log.Printf("⚠️ Kafka: ошибка сериализации события: %v", err)
			return
		}

		// Background context с таймаутом: контекст запроса может быть уже отменен
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = p.writer.WriteMessages(bgCtx, kafka.Message{
			Key:   []byte(event.ReportID),
			Value: payload,
		})
		if err != nil {
			// Игнорируем "Unknown Topic Or Partition" - топик создастся автоматически
			errStr := err.Error()
			if !strings.Contains(errStr, "Unknown Topic Or Partition") &&
				!strings.Contains(errStr, "context canceled") {
				log.Printf("⚠️ Kafka error при отправке события %s/%s: %v", event.Type, event.ReportID, err)
			}
			return
		}

		// Логируем только первые отправки, чтобы не заспамить лог
		if atomic.AddInt64(&p.sentCount, 1) <= 10 {
			log.Printf("✅ Kafka: отправлено событие %s для отчёта %s", event.Type, event.ReportID)
		}
	}()
}

// Close закрывает Kafka writer
func (p *EventPublisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
