package timelineservice

import (
	"bytes"
	"context"
	"sync"

	"github.com/go-mail/mail/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"

	"github.com/openclassware/blogd/internal/common"
)

type MockTemplate struct {
	mock.Mock
}

func (m *MockTemplate) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	args := m.Called(name, data)
	return args.Get(0).(*bytes.Buffer), args.Get(1).(*bytes.Buffer), args.Get(2).(*bytes.Buffer), args.Error(3)
}

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}

type MockMailer struct {
	mu        sync.Mutex
	called    bool
	recipient string
	template  string
}

func (m *MockMailer) send(recipient string, data any, templateFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.called = true
	m.recipient = recipient
	m.template = templateFile
	return nil
}

func (m *MockMailer) IsCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.called
}

func (m *MockMailer) Recipient() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recipient
}

func (m *MockMailer) Template() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.template
}

type MockLogger struct {
	mock.Mock
}

func (l *MockLogger) Info(msg string, args ...any) {
	l.Called(msg, args)
}

func (l *MockLogger) Error(msg string, args ...any) {
	l.Called(msg, args)
}

type MockAcknowledger struct {
	mu    sync.Mutex
	acked bool
}

func (a *MockAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = true
	return nil
}

func (a *MockAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	return nil
}

func (a *MockAcknowledger) Reject(tag uint64, requeue bool) error {
	return nil
}

func (a *MockAcknowledger) Acked() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.acked
}

type MockMessageConsumer struct {
	key   string
	body  []byte
	acker amqp.Acknowledger
}

func (m *MockMessageConsumer) Consume(key common.BindingKey, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	msgsChan := make(chan amqp.Delivery)

	go func() {
		defer close(msgsChan)
		msgsChan <- amqp.Delivery{Acknowledger: m.acker, RoutingKey: m.key, Body: m.body}
	}()

	return msgsChan, nil
}

type MockMessageProducer struct {
	mu        sync.Mutex
	published []publishedMessage
}

type publishedMessage struct {
	key  common.BindingKey
	body []byte
}

func (m *MockMessageProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, publishedMessage{key: key, body: msg})
	return nil
}

func (m *MockMessageProducer) Published() []publishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.published
}
