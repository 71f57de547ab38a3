// Package shell 维护顶层视图状态机以及当前身份的数据快照。
// 状态迁移带守卫条件，身份切换时快照整体清空，
// 避免上一个账号的数据泄漏到下一个账号的视图里。
package shell

import (
	"errors"
	"fmt"
	"sync"

	"phFolio/internal/access"
	"phFolio/internal/render"
)

// State 表示应用外壳当前所处的视图。
type State string

const (
	StateLanding   State = "landing"
	StateAuth      State = "auth"
	StateDashboard State = "dashboard"
	StatePublic    State = "public"
)

// ErrInvalidTransition 表示不被状态机允许的视图切换。
var ErrInvalidTransition = errors.New("invalid shell transition")

// transitions 列出每个状态允许进入的目标状态。
// 任何状态都可以通过分享链接进入 public，
// dashboard 只能从 auth 成功登录后进入。
var transitions = map[State]map[State]bool{
	StateLanding:   {StateAuth: true, StatePublic: true},
	StateAuth:      {StateDashboard: true, StateLanding: true, StatePublic: true},
	StateDashboard: {StateLanding: true, StatePublic: true},
	StatePublic:    {StateLanding: true, StateAuth: true},
}

// Snapshot 是外壳持有的唯一数据快照。
// 每次加载都整体替换，不做字段级合并。
type Snapshot struct {
	Profile           *render.Profile
	Theme             *render.Theme
	Experiences       []render.Experience
	Projects          []render.Project
	Articles          []render.Article
	Videos            []render.FeaturedVideo
	CVTemplate        render.CVTemplateID
	PortfolioTemplate render.PortfolioTemplateID
	Locale            render.Locale
	Access            access.State
}

// emptySnapshot 返回身份切换后使用的初始快照。
func emptySnapshot() Snapshot {
	return Snapshot{
		CVTemplate:        render.CVModern,
		PortfolioTemplate: render.PortfolioModern,
		Locale:            render.DefaultLocale,
		Access:            access.StateActive,
	}
}

// Machine 是并发安全的外壳状态机。
// epoch 在每次身份迁移时递增，用来丢弃迟到的加载结果。
type Machine struct {
	mu      sync.Mutex
	state   State
	epoch   uint64
	snap    Snapshot
	message string
}

func NewMachine() *Machine {
	return &Machine{state: StateLanding, snap: emptySnapshot()}
}

// State 返回当前视图状态。
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Snapshot 返回当前快照的副本。
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Message 返回并清除当前的用户可见错误信息。
func (m *Machine) Message() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := m.message
	m.message = ""
	return msg
}

// transition 执行一次带守卫的状态切换，调用方需持有锁。
func (m *Machine) transition(to State) error {
	if m.state == to {
		return nil
	}
	if !transitions[m.state][to] {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.state, to)
	}
	m.state = to
	return nil
}

// reset 清空快照并使所有在途加载失效，调用方需持有锁。
func (m *Machine) reset() {
	m.epoch++
	m.snap = emptySnapshot()
}

// ShowAuth 进入登录视图。
func (m *Machine) ShowAuth() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transition(StateAuth)
}

// SignIn 在登录成功后进入工作台。身份发生变化，
// 快照清空并返回新的加载 epoch。
func (m *Machine) SignIn() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.transition(StateDashboard); err != nil {
		return 0, err
	}
	m.reset()
	return m.epoch, nil
}

// SignOut 从任意状态回到着陆页并清空快照。
func (m *Machine) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateLanding
	m.reset()
}

// ViewPublic 通过分享链接进入公开视图。
// 公开视图展示的是别人的身份，同样需要清空快照。
func (m *Machine) ViewPublic(locale render.Locale) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.transition(StatePublic); err != nil {
		return 0, err
	}
	m.reset()
	if locale.Valid() {
		m.snap.Locale = locale
	}
	return m.epoch, nil
}

// BeginLoad 返回当前 epoch，作为一次在途加载的令牌。
func (m *Machine) BeginLoad() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

// ApplySnapshot 应用一次加载结果。只有令牌仍是当前 epoch
// 且视图还在 dashboard 或 public 时才生效，迟到的结果直接丢弃。
func (m *Machine) ApplySnapshot(epoch uint64, snap Snapshot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch {
		return false
	}
	if m.state != StateDashboard && m.state != StatePublic {
		return false
	}
	m.snap = snap
	return true
}

// FailLoad 处理初始加载失败:记录一条用户可见信息并退回着陆页。
// 迟到的失败同样被丢弃。
func (m *Machine) FailLoad(epoch uint64, msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch {
		return false
	}
	m.message = msg
	m.state = StateLanding
	m.reset()
	return true
}

// SetLocale 在工作台内切换界面语言。
func (m *Machine) SetLocale(l render.Locale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateDashboard {
		return fmt.Errorf("%w: set locale in %s", ErrInvalidTransition, m.state)
	}
	if !l.Valid() {
		l = render.DefaultLocale
	}
	m.snap.Locale = l
	return nil
}

// SetTheme 在工作台内替换主题。
func (m *Machine) SetTheme(t *render.Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateDashboard {
		return fmt.Errorf("%w: set theme in %s", ErrInvalidTransition, m.state)
	}
	m.snap.Theme = t
	return nil
}

// SelectCVTemplate 切换简历模板，未知标识符回落到 modern。
func (m *Machine) SelectCVTemplate(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateDashboard {
		return fmt.Errorf("%w: select template in %s", ErrInvalidTransition, m.state)
	}
	m.snap.CVTemplate = render.ParseCVTemplateID(id)
	return nil
}

// SelectPortfolioTemplate 切换作品集模板，未知标识符回落到 modern。
func (m *Machine) SelectPortfolioTemplate(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateDashboard {
		return fmt.Errorf("%w: select template in %s", ErrInvalidTransition, m.state)
	}
	m.snap.PortfolioTemplate = render.ParsePortfolioTemplateID(id)
	return nil
}
