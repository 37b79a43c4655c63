package rabbitmq

import (
	"errors"
	"fmt"
	"gizi-go-worker/services/trackLog"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

const reconnectDelay = 60 * time.Second

// Message is the amqp request to publish
type Message struct {
	Queue         string
	ReplyTo       string
	ContentType   string
	CorrelationID string
	Priority      uint8
	Body          []byte
}

// Connection is the connection created
type Connection struct {
	sync.Mutex
	name    string
	url     string
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Queues  []string
	Err     chan error
	ApiErr  chan error
}

var (
	connectionPool = make(map[string]*Connection)
	poolMutex      = &sync.Mutex{}
)

// NewConnection returns the new connection object, reusing the pooled one with the same name
func NewConnection(name, url string, queues []string) *Connection {
	poolMutex.Lock()
	defer poolMutex.Unlock()

	if c, ok := connectionPool[name]; ok {
		return c
	}
	c := &Connection{
		name:   name,
		url:    url,
		Queues: queues,
		Err:    make(chan error, 1),
		ApiErr: make(chan error, 1),
	}
	connectionPool[name] = c
	return c
}

// GetConnection returns the connection which was instantiated
func GetConnection(name string) *Connection {
	poolMutex.Lock()
	defer poolMutex.Unlock()
	return connectionPool[name]
}

func (c *Connection) Connect() error {
	c.Lock()
	defer c.Unlock()

	var err error
	c.Conn, err = amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("Error in creating rabbitmq connection with %s : %s", c.url, err.Error())
	}
	go func(conn *amqp.Connection) {
		<-conn.NotifyClose(make(chan *amqp.Error)) //Listen to NotifyClose
		notify(c.Err, errors.New("Connection Closed"))
		notify(c.ApiErr, errors.New("Api detect Connection Closed"))
	}(c.Conn)
	c.Channel, err = c.Conn.Channel()
	if err != nil {
		return fmt.Errorf("Channel: %s", err)
	}
	return nil
}

// 通知的 channel 滿了就丟掉，避免卡住 NotifyClose 的 goroutine
func notify(ch chan error, err error) {
	select {
	case ch <- err:
	default:
	}
}

func (c *Connection) BindQueue() error {
	for _, q := range c.Queues {
		if _, err := c.Channel.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("error in declaring the queue %s", err)
		}
	}
	return nil
}

// Reconnect reconnects the connection
func (c *Connection) Reconnect() error {
	if err := c.Connect(); err != nil {
		return err
	}
	return c.BindQueue()
}

func (c *Connection) Consume() (map[string]<-chan amqp.Delivery, error) {
	m := make(map[string]<-chan amqp.Delivery)
	for _, q := range c.Queues {
		deliveries, err := c.Channel.Consume(q, "", true, false, false, false, nil)
		if err != nil {
			return nil, err
		}
		m[q] = deliveries
	}
	return m, nil
}

// Publish 送出一筆訊息，Channel 斷線時先重連一次
func (c *Connection) Publish(m Message) error {
	if c.Channel == nil {
		if err := c.Reconnect(); err != nil {
			return err
		}
	}
	contentType := m.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	return c.Channel.Publish("", m.Queue, false, false, amqp.Publishing{
		ContentType:   contentType,
		CorrelationId: m.CorrelationID,
		ReplyTo:       m.ReplyTo,
		Priority:      m.Priority,
		DeliveryMode:  amqp.Persistent,
		Body:          m.Body,
	})
}

// HandleConsumedDeliveries 斷線後每分鐘重試，直到重新取得 delivery channel
func (c *Connection) HandleConsumedDeliveries(q string, delivery <-chan amqp.Delivery, fn func(*Connection, string, <-chan amqp.Delivery)) {
	trackLog.Info(fmt.Sprintf("[HandleConsumedDeliveries] queue %s delivery received", q), false)
	for {
		go fn(c, q, delivery)
		if err := <-c.Err; err != nil {
			for {
				if err := c.Reconnect(); err != nil {
					trackLog.Error(fmt.Sprintf("reconnect %s fail: %s", c.name, err.Error()), true)
					time.Sleep(reconnectDelay)
					continue
				}

				deliveries, err := c.Consume()
				if err != nil {
					time.Sleep(reconnectDelay)
					trackLog.Info("try again", false)
				} else {
					trackLog.Info("try ok", true)
					delivery = deliveries[q]
					break
				}
			}
		}
	}
}
