package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"phFolio/internal/auth"
	"phFolio/internal/content"
	"phFolio/internal/render"
	"phFolio/internal/shell"
)

// WsHandler 承载工作台实时会话:鉴权后为连接维护一个外壳状态机，
// 接收模板/主题/语言切换指令并推送实时预览，同时转发任务完成通知。
type WsHandler struct {
	store          *content.Store
	redisClient    *redis.Client
	authService    *auth.AuthService
	logger         *slog.Logger
	upgrader       websocket.Upgrader
	allowedOrigins []string
}

// NewWsHandler 构造 WebSocket 处理器。
func NewWsHandler(store *content.Store, redisClient *redis.Client, authService *auth.AuthService, logger *slog.Logger, allowedOrigins []string) *WsHandler {
	h := &WsHandler{
		store:          store,
		redisClient:    redisClient,
		authService:    authService,
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if len(h.allowedOrigins) == 0 {
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			}
			for _, allowed := range h.allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}
	return h
}

// wsConn 串行化并发写，读循环与通知循环共用一个连接。
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(v)
}

func (w *wsConn) writeRaw(messageType int, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(messageType, data)
}

func (w *wsConn) writeControl(messageType int, data []byte, deadline time.Time) error {
	return w.conn.WriteControl(messageType, data, deadline)
}

type wsClientMessage struct {
	Type     string `json:"type"`
	Token    string `json:"token,omitempty"`
	Locale   string `json:"locale,omitempty"`
	Template string `json:"template,omitempty"`
	Surface  string `json:"surface,omitempty"`
	Theme    *struct {
		PrimaryColor    string `json:"primary_color"`
		SecondaryColor  string `json:"secondary_color"`
		AccentColor     string `json:"accent_color"`
		BackgroundColor string `json:"background_color"`
		FontFamily      string `json:"font_family"`
		Mode            string `json:"mode"`
		Layout          string `json:"layout"`
	} `json:"theme,omitempty"`
}

type wsServerMessage struct {
	Type    string `json:"type"`
	Surface string `json:"surface,omitempty"`
	HTML    string `json:"html,omitempty"`
	State   string `json:"state,omitempty"`
	Message string `json:"message,omitempty"`
}

// HandleConnection 负责升级连接并启动工作台会话。
func (h *WsHandler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("upgrade websocket failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	baseLog := h.logger.With(
		slog.String("client_ip", c.ClientIP()),
	)
	ws := &wsConn{conn: conn}

	userID, err := h.awaitAuth(conn)
	if err != nil {
		baseLog.Warn("websocket authentication failed", slog.Any("error", err))
		return
	}

	userLog := baseLog.With(slog.Uint64("user_id", uint64(userID)))
	userLog.Info("studio session authenticated")

	// 每个连接一个外壳状态机:鉴权成功即进入工作台
	machine := shell.NewMachine()
	if err := machine.ShowAuth(); err != nil {
		userLog.Error("shell transition failed", slog.Any("error", err))
		return
	}
	epoch, err := machine.SignIn()
	if err != nil {
		userLog.Error("shell sign-in failed", slog.Any("error", err))
		return
	}

	go h.loadSnapshot(ctx, machine, epoch, userID, ws, userLog)

	errCh := make(chan error, 2)
	go h.notifyLoop(ctx, ws, userID, errCh, cancel, userLog)
	go h.commandLoop(ctx, conn, ws, machine, userID, errCh, cancel, userLog)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			userLog.Info("studio session closed", slog.Any("error", err))
		} else {
			userLog.Info("studio session closed")
		}
	}
}

type wsAuthMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// awaitAuth 等待首条 auth 消息并校验访问令牌。
func (h *WsHandler) awaitAuth(conn *websocket.Conn) (uint, error) {
	_ = conn.SetReadDeadline(time.Now().Add(15 * time.Second))
	defer conn.SetReadDeadline(time.Time{})

	_, message, err := conn.ReadMessage()
	if err != nil {
		return 0, fmt.Errorf("read auth message: %w", err)
	}

	var authMsg wsAuthMessage
	if err := json.Unmarshal(message, &authMsg); err != nil {
		writeClose(conn, websocket.ClosePolicyViolation, "invalid auth payload")
		return 0, fmt.Errorf("decode auth payload: %w", err)
	}
	if authMsg.Type != "auth" || authMsg.Token == "" {
		writeClose(conn, websocket.ClosePolicyViolation, "auth required")
		return 0, fmt.Errorf("invalid auth message")
	}

	claims, err := h.authService.ValidateToken(authMsg.Token)
	if err != nil {
		writeClose(conn, websocket.ClosePolicyViolation, "unauthorized")
		return 0, fmt.Errorf("validate token: %w", err)
	}
	if claims.TokenType != "access" {
		writeClose(conn, websocket.ClosePolicyViolation, "access token required")
		return 0, fmt.Errorf("invalid token type: %s", claims.TokenType)
	}

	return claims.UserID, nil
}

// loadSnapshot 异步加载用户数据并应用到状态机。
// 迟到的结果（用户已登出或切换）会被状态机丢弃。
func (h *WsHandler) loadSnapshot(ctx context.Context, machine *shell.Machine, epoch uint64, userID uint, ws *wsConn, log *slog.Logger) {
	props, err := h.store.LoadPortfolioProps(ctx, userID, render.DefaultLocale)
	if err != nil {
		log.Error("load studio snapshot failed", slog.Any("error", err))
		if machine.FailLoad(epoch, "failed to load your data") {
			_ = ws.writeJSON(wsServerMessage{Type: "error", State: string(machine.State()), Message: machine.Message()})
		}
		return
	}

	snap := shell.Snapshot{
		Profile:           &props.Profile,
		Theme:             props.Theme,
		Experiences:       props.Experiences,
		Projects:          props.Projects,
		Articles:          props.Articles,
		Videos:            props.Videos,
		CVTemplate:        render.CVModern,
		PortfolioTemplate: render.PortfolioModern,
		Locale:            render.DefaultLocale,
	}
	if machine.ApplySnapshot(epoch, snap) {
		_ = ws.writeJSON(wsServerMessage{Type: "snapshot_ready", State: string(machine.State())})
	} else {
		log.Info("stale studio snapshot discarded")
	}
}

// commandLoop 处理工作台指令。
func (h *WsHandler) commandLoop(
	ctx context.Context,
	conn *websocket.Conn,
	ws *wsConn,
	machine *shell.Machine,
	userID uint,
	errCh chan<- error,
	cancel context.CancelFunc,
	log *slog.Logger,
) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			writeClose(conn, websocket.CloseAbnormalClosure, "read error")
			errCh <- fmt.Errorf("read message: %w", err)
			cancel()
			return
		}

		var msg wsClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			_ = ws.writeJSON(wsServerMessage{Type: "error", Message: "invalid message"})
			continue
		}

		switch msg.Type {
		case "set_locale":
			locale, _ := render.ParseLocale(msg.Locale)
			if err := machine.SetLocale(locale); err != nil {
				_ = ws.writeJSON(wsServerMessage{Type: "error", Message: "not in dashboard"})
				continue
			}
			_ = ws.writeJSON(wsServerMessage{Type: "locale", Message: string(locale)})

		case "set_theme":
			if msg.Theme == nil {
				_ = ws.writeJSON(wsServerMessage{Type: "error", Message: "theme missing"})
				continue
			}
			theme := &render.Theme{
				PrimaryColor:    msg.Theme.PrimaryColor,
				SecondaryColor:  msg.Theme.SecondaryColor,
				AccentColor:     msg.Theme.AccentColor,
				BackgroundColor: msg.Theme.BackgroundColor,
				FontFamily:      msg.Theme.FontFamily,
				Mode:            msg.Theme.Mode,
				Layout:          msg.Theme.Layout,
			}
			if err := machine.SetTheme(theme); err != nil {
				_ = ws.writeJSON(wsServerMessage{Type: "error", Message: "not in dashboard"})
				continue
			}
			_ = ws.writeJSON(wsServerMessage{Type: "theme"})

		case "select_cv_template":
			if err := machine.SelectCVTemplate(msg.Template); err != nil {
				_ = ws.writeJSON(wsServerMessage{Type: "error", Message: "not in dashboard"})
				continue
			}
			h.sendPreview(ws, machine, "cv", log)

		case "select_portfolio_template":
			if err := machine.SelectPortfolioTemplate(msg.Template); err != nil {
				_ = ws.writeJSON(wsServerMessage{Type: "error", Message: "not in dashboard"})
				continue
			}
			h.sendPreview(ws, machine, "portfolio", log)

		case "preview":
			surface := msg.Surface
			if surface != "portfolio" {
				surface = "cv"
			}
			h.sendPreview(ws, machine, surface, log)

		case "sign_out":
			machine.SignOut()
			_ = ws.writeJSON(wsServerMessage{Type: "state", State: string(machine.State())})
			errCh <- nil
			cancel()
			return

		default:
			_ = ws.writeJSON(wsServerMessage{Type: "error", Message: "unknown command"})
		}
	}
}

// sendPreview 用状态机当前快照渲染一个预览片段并推送。
func (h *WsHandler) sendPreview(ws *wsConn, machine *shell.Machine, surface string, log *slog.Logger) {
	snap := machine.Snapshot()

	profile := render.Profile{}
	if snap.Profile != nil {
		profile = *snap.Profile
	}
	profile.Locale = snap.Locale

	var html string
	var err error
	if surface == "portfolio" {
		html, err = render.RenderPortfolio(snap.PortfolioTemplate, render.PortfolioProps{
			Profile:     profile,
			Experiences: snap.Experiences,
			Projects:    snap.Projects,
			Videos:      snap.Videos,
			Articles:    snap.Articles,
			Locale:      snap.Locale,
			Theme:       snap.Theme,
		})
	} else {
		html, err = render.RenderCV(snap.CVTemplate, render.CVProps{
			Profile:     profile,
			Experiences: snap.Experiences,
			Projects:    snap.Projects,
			Articles:    snap.Articles,
			Locale:      snap.Locale,
			Theme:       snap.Theme,
		})
	}
	if err != nil {
		log.Error("render preview failed", slog.String("surface", surface), slog.Any("error", err))
		_ = ws.writeJSON(wsServerMessage{Type: "error", Message: "failed to render preview"})
		return
	}

	_ = ws.writeJSON(wsServerMessage{Type: "preview", Surface: surface, HTML: html})
}

func writeClose(conn *websocket.Conn, code int, text string) {
	deadline := time.Now().Add(5 * time.Second)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), deadline)
}

// notifyLoop 订阅用户通知频道并转发给客户端。
func (h *WsHandler) notifyLoop(
	ctx context.Context,
	ws *wsConn,
	userID uint,
	errCh chan<- error,
	cancel context.CancelFunc,
	log *slog.Logger,
) {
	channel := fmt.Sprintf("user_notify:%d", userID)
	pubsub := h.redisClient.Subscribe(ctx, channel)
	defer pubsub.Close()

	log.Info("subscribed to redis channel", slog.String("channel", channel))

	ch := pubsub.Channel()
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				errCh <- fmt.Errorf("pubsub channel closed")
				cancel()
				return
			}

			if err := ws.writeRaw(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				errCh <- fmt.Errorf("write message: %w", err)
				cancel()
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(5 * time.Second)
			if err := ws.writeControl(websocket.PingMessage, []byte("ping"), deadline); err != nil {
				errCh <- fmt.Errorf("write ping: %w", err)
				cancel()
				return
			}
		}
	}
}
