// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtime keeps the STOMP-over-websocket notification channel of the
// back-office alive.
//
// A [Channel] is an explicit state machine:
//
//	disconnected --Connect--> connecting --CONNECTED--> connected
//	connected --close/ERROR--> disconnected --(timer)--> connecting
//	connecting/connected --attempts exhausted--> failed
//	any --Disconnect--> disconnected
//
// Transport ([Dialer]) and timers ([Scheduler]) are injected so the whole
// lifecycle can be driven without a network.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ogdevs/backoffice-client/internal/alert"
	"github.com/ogdevs/backoffice-client/internal/auth"
	"github.com/ogdevs/backoffice-client/internal/config"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/internal/notify"
	"github.com/ogdevs/backoffice-client/internal/utils"
	"github.com/ogdevs/backoffice-client/models"
)

// Defaults applied by [Options] for zero fields. DefaultEndpoint is the raw
// websocket transport of the backend's SockJS endpoint at /ws.
const (
	DefaultEndpoint    = "http://localhost:8089/ws/websocket"
	DefaultTopic       = "/room/notifications"
	DefaultSendPath    = "/chat/send"
	DefaultBaseDelay   = 5 * time.Second
	DefaultFactor      = 1.5
	DefaultMaxAttempts = 5
	DefaultMinValidity = 30 * time.Second

	roomTopicPrefix = "/room/messages/"
)

// User-facing alert texts.
const (
	msgNotLoggedIn      = "User not logged in. Redirecting to login..."
	msgReconnectFailed  = "Unable to reconnect to WebSocket after multiple attempts."
	msgConnectionError  = "WebSocket connection error"
	msgInitError        = "Error initializing WebSocket"
	msgAuditPrefix      = "New Audit Notification: "
	msgProcessPrefix    = "New Process Notification: "
	notificationIDRegex = `ID: (\d+)`
)

var (
	notificationID = regexp.MustCompile(notificationIDRegex)
	ids            = utils.NewUUIDGenerator()
)

// Session is the identity-provider side of the channel.
type Session interface {
	IsLoggedIn(ctx context.Context) bool
	UpdateToken(ctx context.Context, minValidity time.Duration) (string, error)
	Login(ctx context.Context) error
}

// Options tune the channel. Zero fields take the defaults above.
type Options struct {
	// Endpoint is the http(s) or ws(s) URL of the STOMP broker. http maps to
	// ws and https to wss before dialing.
	Endpoint string

	// Topic is the notification destination subscribed on every connect.
	Topic string

	// SendPath is the application destination chat messages are sent to.
	SendPath string

	// BaseDelay is the wait before the first reconnect attempt.
	BaseDelay time.Duration

	// Factor multiplies the delay after every failed attempt. Values below 1
	// fall back to DefaultFactor.
	Factor float64

	// MaxAttempts is the number of reconnects tried before the channel gives
	// up and moves to the failed state.
	MaxAttempts int

	// MinValidity is the remaining token lifetime below which the session is
	// asked for a refreshed token before dialing.
	MinValidity time.Duration
}

// OptionsFromConfig maps the realtime and auth sections of the client config.
func OptionsFromConfig(rt config.ClientRealtime, minValidity time.Duration) Options {
	return Options{
		Endpoint:    rt.Endpoint,
		Topic:       rt.Topic,
		BaseDelay:   rt.BaseDelay,
		Factor:      rt.Factor,
		MaxAttempts: rt.MaxAttempts,
		MinValidity: minValidity,
	}
}

func (o Options) withDefaults() Options {
	if o.Endpoint == "" {
		o.Endpoint = DefaultEndpoint
	}
	if o.Topic == "" {
		o.Topic = DefaultTopic
	}
	if o.SendPath == "" {
		o.SendPath = DefaultSendPath
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = DefaultBaseDelay
	}
	if o.Factor < 1 {
		o.Factor = DefaultFactor
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.MinValidity <= 0 {
		o.MinValidity = DefaultMinValidity
	}
	return o
}

// Option overrides a collaborator of the channel.
type Option func(*Channel)

// WithDialer replaces the websocket dialer, e.g. with an in-memory transport.
func WithDialer(d Dialer) Option { return func(c *Channel) { c.dialer = d } }

// WithScheduler replaces the timer source used for reconnect delays.
func WithScheduler(s Scheduler) Option { return func(c *Channel) { c.scheduler = s } }

// WithClock replaces time.Now for timestamps of received notifications.
func WithClock(now func() time.Time) Option { return func(c *Channel) { c.now = now } }

type roomSubscription struct {
	roomID  int64
	handler func(models.ChatMessage)
}

// Channel is the realtime client. All methods are safe for concurrent use.
type Channel struct {
	opts          Options
	session       Session
	dialer        Dialer
	scheduler     Scheduler
	delays        *reconnectDelays
	notifications *notify.NotificationStore
	status        *notify.StatusStore
	alerts        alert.Alerter
	logger        *logger.Logger
	now           func() time.Time

	mu       sync.Mutex
	state    models.ConnectionState
	attempts int
	conn     Conn
	// gen changes whenever the current transport is dropped; callbacks of an
	// older transport are ignored.
	gen      uint64
	timer    Timer
	timerSeq uint64
	runCtx   context.Context
	topicSub string
	rooms    map[string]roomSubscription
	pending  []Frame
}

// NewChannel returns a disconnected channel. Nothing is dialed until
// [Channel.Connect]; notifications land in the given store and every state
// transition is published to status. Alerts carry the user-facing texts for
// incoming notifications and connection failures.
func NewChannel(
	opts Options,
	session Session,
	notifications *notify.NotificationStore,
	status *notify.StatusStore,
	alerts alert.Alerter,
	log *logger.Logger,
	options ...Option,
) *Channel {
	opts = opts.withDefaults()
	c := &Channel{
		opts:          opts,
		session:       session,
		dialer:        NewWSDialer(0),
		scheduler:     RealScheduler(),
		delays:        newReconnectDelays(opts.BaseDelay, opts.Factor),
		notifications: notifications,
		status:        status,
		alerts:        alerts,
		logger:        log.WithComponent("realtime"),
		now:           time.Now,
		state:         models.Disconnected,
		runCtx:        context.Background(),
		rooms:         make(map[string]roomSubscription),
	}
	for _, o := range options {
		o(c)
	}
	c.status.Set(models.Disconnected)
	return c
}

// State returns the current connection state.
func (c *Channel) State() models.ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Attempts returns the number of reconnect attempts made since the last
// successful open or external Connect.
func (c *Channel) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// Connect opens the channel. It is a no-op while connecting or connected.
// Every call resets the reconnect attempt counter and cancels a pending
// reconnect; it is the only way out of the failed state.
//
// Without a usable credential the login redirect is triggered and
// auth.ErrNotAuthenticated returned. Transport failures are returned as well
// but also schedule a reconnect.
func (c *Channel) Connect(ctx context.Context) error {
	return c.connect(ctx, true)
}

func (c *Channel) connect(ctx context.Context, external bool) error {
	c.mu.Lock()
	if c.state == models.Connecting || c.state == models.Connected {
		c.mu.Unlock()
		c.logger.Debug().Str("func", "Channel.connect").Msg("already connected or connecting")
		return nil
	}
	if external {
		c.attempts = 0
		c.cancelTimerLocked()
		c.runCtx = ctx
	}
	c.setStateLocked(models.Connecting)
	gen := c.gen
	c.mu.Unlock()

	if !c.session.IsLoggedIn(ctx) {
		return c.redirectToLogin(ctx, gen)
	}

	token, err := c.session.UpdateToken(ctx, c.opts.MinValidity)
	if errors.Is(err, auth.ErrNotAuthenticated) {
		return c.redirectToLogin(ctx, gen)
	}
	if err != nil {
		c.fail(gen, msgInitError, err)
		return fmt.Errorf("refresh token for realtime channel: %w", err)
	}

	wsURL, err := EndpointURL(c.opts.Endpoint, token)
	if err != nil {
		c.fail(gen, msgInitError, err)
		return err
	}

	conn, err := c.dialer.Dial(ctx, wsURL)
	if err != nil {
		c.logger.Err(err).Str("func", "Channel.connect").Msg("dial failed")
		c.fail(gen, msgInitError, err)
		return fmt.Errorf("dial realtime endpoint: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		// Disconnect won the race
		conn.Close()
		return nil
	}

	if err := conn.WriteMessage(connectFrame(c.opts.Endpoint).Encode()); err != nil {
		conn.Close()
		c.gen++
		c.failLocked(msgInitError, err)
		return fmt.Errorf("send CONNECT frame: %w", err)
	}
	c.conn = conn
	go c.readLoop(conn, gen)

	c.logger.Debug().Str("func", "Channel.connect").Msg("transport open, waiting for CONNECTED")
	return nil
}

func connectFrame(endpoint string) Frame {
	host := "localhost"
	if u, err := url.Parse(endpoint); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	return NewFrame(cmdConnect,
		"accept-version", "1.2,1.1,1.0",
		"host", host,
		"heart-beat", "0,0",
	)
}

func (c *Channel) redirectToLogin(ctx context.Context, gen uint64) error {
	c.logger.Warn().Str("func", "Channel.connect").Msg("user not logged in, redirecting to login")
	c.alerts.ShowWarning(msgNotLoggedIn)

	if err := c.session.Login(ctx); err != nil {
		c.logger.Err(err).Str("func", "Channel.connect").Msg("login redirect failed")
	}

	c.mu.Lock()
	if c.gen == gen {
		c.setStateLocked(models.Disconnected)
	}
	c.mu.Unlock()

	return auth.ErrNotAuthenticated
}

// Disconnect cancels any pending reconnect, closes the transport and drops
// queued outbound messages. It is idempotent.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelTimerLocked()
	c.pending = nil

	if c.conn != nil {
		if err := c.conn.WriteMessage(NewFrame(cmdDisconnect, "receipt", "disconnect-"+ids.Generate()).Encode()); err != nil {
			c.logger.Debug().Err(err).Str("func", "Channel.Disconnect").Msg("DISCONNECT frame not sent")
		}
		c.conn.Close()
		c.conn = nil
		c.logger.Info().Str("func", "Channel.Disconnect").Msg("websocket disconnected")
	}

	c.gen++
	c.topicSub = ""
	c.setStateLocked(models.Disconnected)
}

func (c *Channel) readLoop(conn Conn, gen uint64) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			c.onClose(gen, err)
			return
		}

		frame, err := DecodeFrame(data)
		if err != nil {
			c.logger.Warn().Err(err).Str("func", "Channel.readLoop").Msg("dropping undecodable frame")
			continue
		}
		if frame.Heartbeat() {
			continue
		}

		switch frame.Command {
		case cmdConnected:
			c.onOpen(gen)
		case cmdMessage:
			c.onMessage(gen, frame)
		case cmdError:
			c.onProtocolError(gen, frame)
			return
		case cmdReceipt:
		default:
			c.logger.Debug().Str("func", "Channel.readLoop").Str("command", frame.Command).Msg("ignoring frame")
		}
	}
}

func (c *Channel) onOpen(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen || c.conn == nil {
		return
	}

	c.setStateLocked(models.Connected)
	c.attempts = 0
	c.logger.Info().Str("func", "Channel.onOpen").Msg("websocket connected")

	c.topicSub = "sub-" + ids.Generate()
	c.writeLocked(NewFrame(cmdSubscribe, "id", c.topicSub, "destination", c.opts.Topic, "ack", "auto"))
	for id, room := range c.rooms {
		c.writeLocked(subscribeRoomFrame(id, room.roomID))
	}

	for _, f := range c.pending {
		c.writeLocked(f)
	}
	if n := len(c.pending); n > 0 {
		c.logger.Debug().Str("func", "Channel.onOpen").Int("count", n).Msg("flushed pending messages")
	}
	c.pending = nil
}

func (c *Channel) onProtocolError(gen uint64, frame Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}

	msg, _ := frame.Header("message")
	c.logger.Error().
		Str("func", "Channel.onProtocolError").
		Str("message", msg).
		Str("body", string(frame.Body)).
		Msg("STOMP error frame received")

	c.dropConnLocked()
	c.failLocked(msgConnectionError, ErrProtocol)
}

func (c *Channel) onClose(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}

	c.logger.Warn().Err(err).Str("func", "Channel.onClose").Msg("websocket closed")
	c.dropConnLocked()
	c.setStateLocked(models.Disconnected)
	c.scheduleReconnectLocked()
}

func (c *Channel) fail(gen uint64, what string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}
	c.failLocked(what, err)
}

// failLocked is the failure handler: alert, disconnected, reconnect.
func (c *Channel) failLocked(what string, err error) {
	c.alerts.ShowError(what + ": " + err.Error())
	c.setStateLocked(models.Disconnected)
	c.scheduleReconnectLocked()
}

func (c *Channel) dropConnLocked() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.topicSub = ""
	c.gen++
}

func (c *Channel) scheduleReconnectLocked() {
	if c.attempts >= c.opts.MaxAttempts {
		c.logger.Error().
			Str("func", "Channel.scheduleReconnect").
			Int("attempts", c.attempts).
			Msg("max reconnect attempts reached, giving up")
		c.alerts.ShowError(msgReconnectFailed)
		c.setStateLocked(models.Failed)
		return
	}

	c.cancelTimerLocked()
	delay := c.delays.delay(c.attempts)
	seq := c.timerSeq

	c.logger.Info().
		Str("func", "Channel.scheduleReconnect").
		Int("attempt", c.attempts+1).
		Int("max_attempts", c.opts.MaxAttempts).
		Dur("delay", delay).
		Msg("scheduling reconnect")

	c.timer = c.scheduler.AfterFunc(delay, func() { c.reconnect(seq) })
}

func (c *Channel) reconnect(seq uint64) {
	c.mu.Lock()
	if seq != c.timerSeq {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	ctx := c.runCtx
	if ctx.Err() != nil {
		c.mu.Unlock()
		c.logger.Debug().Str("func", "Channel.reconnect").Msg("context done, not reconnecting")
		return
	}
	c.attempts++
	c.mu.Unlock()

	if err := c.connect(ctx, false); err != nil {
		c.logger.Debug().Err(err).Str("func", "Channel.reconnect").Msg("reconnect attempt failed")
	}
}

func (c *Channel) cancelTimerLocked() {
	c.timerSeq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Channel) setStateLocked(state models.ConnectionState) {
	c.state = state
	c.status.Set(state)
}

func (c *Channel) writeLocked(f Frame) {
	if c.conn == nil {
		return
	}
	if err := c.conn.WriteMessage(f.Encode()); err != nil {
		c.logger.Warn().Err(err).Str("func", "Channel.write").Str("command", f.Command).Msg("frame not written")
	}
}

func (c *Channel) onMessage(gen uint64, frame Frame) {
	sub, _ := frame.Header("subscription")
	dest, _ := frame.Header("destination")

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return
	}
	isTopic := (sub != "" && sub == c.topicSub) || (sub == "" && dest == c.opts.Topic)
	room, isRoom := c.rooms[sub]
	c.mu.Unlock()

	switch {
	case isTopic:
		c.handleNotification(string(frame.Body))
	case isRoom:
		c.handleRoomMessage(room, frame.Body)
	default:
		c.logger.Debug().Str("func", "Channel.onMessage").Str("subscription", sub).Msg("message for unknown subscription")
	}
}

// handleNotification files one notifications-topic body.
func (c *Channel) handleNotification(body string) {
	n := models.Notification{ID: parseNotificationID(body), Message: body, Timestamp: c.now()}
	if n.ID == 0 {
		c.logger.Warn().Str("func", "Channel.handleNotification").Str("body", body).Msg("could not parse ID from notification")
	}

	ch := ClassifyNotification(body)
	c.notifications.Append(ch, n)

	if ch == models.AuditChannel {
		c.alerts.ShowInfo(msgAuditPrefix + body)
	} else {
		c.alerts.ShowInfo(msgProcessPrefix + body)
	}
	c.logger.Debug().Str("func", "Channel.handleNotification").Str("channel", string(ch)).Int64("id", n.ID).Msg("notification received")
}

func (c *Channel) handleRoomMessage(room roomSubscription, body []byte) {
	if len(strings.TrimSpace(string(body))) == 0 {
		c.logger.Warn().Str("func", "Channel.handleRoomMessage").Int64("room_id", room.roomID).Msg("empty message body")
		return
	}

	var msg models.ChatMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		c.logger.Err(err).Str("func", "Channel.handleRoomMessage").Int64("room_id", room.roomID).Msg("invalid chat message")
		return
	}
	room.handler(msg)
}

// parseNotificationID extracts the number after "ID: ", 0 when absent.
func parseNotificationID(body string) int64 {
	m := notificationID.FindStringSubmatch(body)
	if m == nil {
		return 0
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// ClassifyNotification files bodies mentioning "audit" (any case) under the
// audit channel and everything else under process.
func ClassifyNotification(body string) models.NotificationChannel {
	if strings.Contains(strings.ToLower(body), "audit") {
		return models.AuditChannel
	}
	return models.ProcessChannel
}

// Send publishes payload as JSON to destination. While the channel is not
// connected the frame is queued and flushed on the next open.
func (c *Channel) Send(ctx context.Context, destination string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode message for %s: %w", destination, err)
	}

	token, err := c.session.UpdateToken(ctx, c.opts.MinValidity)
	if err != nil {
		return fmt.Errorf("send to %s: %w", destination, err)
	}

	frame := NewFrame(cmdSend,
		"destination", destination,
		"content-type", "application/json",
		"Authorization", "Bearer "+token,
	)
	frame.Body = body

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != models.Connected || c.conn == nil {
		c.pending = append(c.pending, frame)
		c.logger.Debug().Str("func", "Channel.Send").Str("destination", destination).Msg("not connected, message queued")
		return nil
	}

	if err := c.conn.WriteMessage(frame.Encode()); err != nil {
		return fmt.Errorf("send to %s: %w", destination, err)
	}
	return nil
}

// SendChatMessage publishes req on the chat send path.
func (c *Channel) SendChatMessage(ctx context.Context, req models.MessageRequest) error {
	return c.Send(ctx, c.opts.SendPath, req)
}

// SubscribeRoom delivers every message of room roomID to handler until the
// returned function is called. The subscription survives reconnects.
func (c *Channel) SubscribeRoom(roomID int64, handler func(models.ChatMessage)) func() {
	id := "room-" + ids.Generate()

	c.mu.Lock()
	c.rooms[id] = roomSubscription{roomID: roomID, handler: handler}
	if c.state == models.Connected {
		c.writeLocked(subscribeRoomFrame(id, roomID))
	}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.rooms, id)
			if c.state == models.Connected {
				c.writeLocked(NewFrame(cmdUnsubscribe, "id", id))
			}
		})
	}
}

func subscribeRoomFrame(id string, roomID int64) Frame {
	return NewFrame(cmdSubscribe,
		"id", id,
		"destination", roomTopicPrefix+strconv.FormatInt(roomID, 10),
		"ack", "auto",
	)
}
