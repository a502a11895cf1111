// Package mqtt publishes demurrage risk alerts to an MQTT broker.
package mqtt

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/steel-maritime/demurrage/core/alert"
	"github.com/steel-maritime/demurrage/core/monitoring"
	"github.com/steel-maritime/demurrage/infra/logger"
)

// Defaults applied by NewPahoPublisher.
const (
	DefaultAlertTopic  = "demurrage/alerts"
	DefaultStatusTopic = "demurrage/status"
	DefaultMaxRetries  = 3
	DefaultBackoff     = 100 * time.Millisecond
	disconnectQuiesce  = 250
	closeTimeout       = time.Second
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Broker      string      `json:"broker" yaml:"broker"`
	ClientID    string      `json:"client_id" yaml:"client_id"`
	Username    string      `json:"username" yaml:"username"`
	Password    string      `json:"password" yaml:"password"`
	AlertTopic  string      `json:"alert_topic" yaml:"alert_topic"`
	StatusTopic string      `json:"status_topic" yaml:"status_topic"`
	QoS         byte        `json:"qos" yaml:"qos"`
	Retain      bool        `json:"retain" yaml:"retain"`
	UseTLS      bool        `json:"use_tls" yaml:"use_tls"`
	ClientCert  string      `json:"client_cert" yaml:"client_cert"`
	ClientKey   string      `json:"client_key" yaml:"client_key"`
	CABundle    string      `json:"ca_bundle" yaml:"ca_bundle"`
	MaxRetries  int         `json:"max_retries" yaml:"max_retries"`
	BackoffMS   int         `json:"backoff_ms" yaml:"backoff_ms"`
	TLSConfig   *tls.Config `json:"-" yaml:"-"`
}

// pahoClient is the subset of paho.Client used here.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoPublisher implements alert.Publisher on top of Eclipse Paho.
type PahoPublisher struct {
	cli         pahoClient
	logger      logger.Logger
	topic       string
	statusTopic string
	qos         byte
	retain      bool
	maxRetries  int
	backoff     time.Duration
}

// NewPahoPublisher connects to the broker. The status topic carries a
// retained "online" message and an "offline" last will.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	if cfg.AlertTopic == "" {
		cfg.AlertTopic = DefaultAlertTopic
	}
	if cfg.StatusTopic == "" {
		cfg.StatusTopic = DefaultStatusTopic
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "demurrage-" + uuid.NewString()[:8]
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.New("mqtt_alerts")
	p := &PahoPublisher{
		logger:      log,
		topic:       cfg.AlertTopic,
		statusTopic: cfg.StatusTopic,
		qos:         cfg.QoS,
		retain:      cfg.Retain,
		maxRetries:  cfg.MaxRetries,
		backoff:     time.Duration(cfg.BackoffMS) * time.Millisecond,
	}
	if p.maxRetries <= 0 {
		p.maxRetries = DefaultMaxRetries
	}
	if p.backoff <= 0 {
		p.backoff = DefaultBackoff
	}

	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected to %s", cfg.Broker)
		c.Publish(p.statusTopic, p.qos, true, "online")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	p.cli = c
	return p, nil
}

// NewClientOptions builds paho client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	if cfg.StatusTopic != "" {
		opts.SetWill(cfg.StatusTopic, "offline", cfg.QoS, true)
	}
	return opts, nil
}

// LoadTLSConfig reads the client certificate pair and CA bundle.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caBytes) {
		return nil, fmt.Errorf("no certificates in %s", c.CABundle)
	}
	return &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}

// Topic returns the topic an alert for the given port is published on.
func (p *PahoPublisher) Topic(portID string) string {
	return fmt.Sprintf("%s/%s", p.topic, portID)
}

// Publish sends the alert, retrying with exponential backoff. A missing
// alert ID is filled with a fresh UUID. It returns ctx.Err() as soon as ctx
// is done, even while a publish token is still pending.
func (p *PahoPublisher) Publish(ctx context.Context, a alert.Alert) error {
	if p.cli == nil || !p.cli.IsConnected() {
		return alert.ErrNotConnected
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return err
	}

	topic := p.Topic(a.PortID)
	var publishErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		token := p.cli.Publish(topic, p.qos, p.retain, payload)
		select {
		case <-token.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
		publishErr = token.Error()
		if publishErr == nil {
			p.logger.Infow("alert published", map[string]any{
				"alert_id":   a.ID,
				"topic":      topic,
				"risk_level": string(a.RiskLevel),
			})
			return nil
		}
		p.logger.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
		if attempt == p.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff * time.Duration(1<<attempt)):
		}
	}
	monitoring.CaptureException(publishErr, map[string]string{
		"module":    "mqtt",
		"vessel_id": a.VesselID,
		"port_id":   a.PortID,
	})
	return fmt.Errorf("publish alert %s: %w", a.ID, publishErr)
}

// Close publishes the offline status and disconnects.
func (p *PahoPublisher) Close() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Publish(p.statusTopic, p.qos, true, "offline").WaitTimeout(closeTimeout)
		p.cli.Disconnect(disconnectQuiesce)
	}
}
