// Package access 把外部计费系统同步来的订阅时间戳归类为粗粒度的
// 访问状态，用来决定公开页与工作台展示哪种变体。
package access

import "time"

// State 是订阅派生的访问门禁状态。
type State string

const (
	StateActive  State = "active"
	StateTrial   State = "trial"
	StateGrace   State = "grace"
	StateBlocked State = "blocked"
)

// DefaultGraceDays 在订阅记录完全没有给出宽限期时生效。
// 显式的 0 表示没有宽限期，不会被默认值覆盖。
const DefaultGraceDays = 3

// Subscription 是计费协作方的数据，这里只读。
type Subscription struct {
	Status       string
	TrialEndsAt  *time.Time
	PeriodEndsAt *time.Time
	GraceDays    *int
}

// StatusBlocked 是计费侧的显式封禁标记，优先于一切日期判断。
const StatusBlocked = "blocked"

// Classify 按固定优先级把订阅归类为访问状态：
//  1. 无订阅记录 → active（未接入计费或计费侧配置缺失时不拦人）
//  2. 显式 blocked → blocked，短路所有日期逻辑
//  3. 试用期未过 → trial
//  4. 付费周期未过 → active
//  5. 周期已过但在宽限期内 → grace
//  6. 周期加宽限期都已过 → blocked
//  7. 只有试用期且已过 → blocked
//  8. 其余 → active
func Classify(sub *Subscription, now time.Time) State {
	if sub == nil {
		return StateActive
	}
	if sub.Status == StatusBlocked {
		return StateBlocked
	}
	if sub.TrialEndsAt != nil && !now.After(*sub.TrialEndsAt) {
		return StateTrial
	}
	if sub.PeriodEndsAt != nil {
		if !now.After(*sub.PeriodEndsAt) {
			return StateActive
		}
		graceDays := DefaultGraceDays
		if sub.GraceDays != nil {
			graceDays = *sub.GraceDays
		}
		graceEnd := sub.PeriodEndsAt.Add(time.Duration(graceDays) * 24 * time.Hour)
		if !now.After(graceEnd) {
			return StateGrace
		}
		return StateBlocked
	}
	if sub.TrialEndsAt != nil {
		// 只有试用期且已经过期
		return StateBlocked
	}
	return StateActive
}
