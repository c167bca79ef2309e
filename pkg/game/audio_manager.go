package game

import (
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// 合成器采样率
const audioSampleRate = beep.SampleRate(44100)

// 两次爆裂音之间的最小间隔，高频爆发时避免音效堆叠成噪音墙
const burstSoundCooldown = 60 * time.Millisecond

// waveShape 振荡器波形
type waveShape int

const (
	waveSine waveShape = iota
	waveSquare
	waveNoise
)

// AudioManager 音频管理器
// 职责：
//   - 为爆发和形状盖章合成一次性音效（无任何音频资源文件）
//   - 首次启用时惰性初始化扬声器，避免无声运行时占用音频设备
//   - 初始化失败永久降级为静音，绝不影响渲染循环
type AudioManager struct {
	mu          sync.Mutex
	enabled     bool
	initialized bool
	initFailed  bool
	lastBurst   time.Time
}

// NewAudioManager 创建新的音频管理器
// 此时不会触碰音频设备
func NewAudioManager() *AudioManager {
	return &AudioManager{}
}

// SetEnabled 切换音效开关
// 首次启用时初始化扬声器；初始化失败只告警一次，之后保持静音
func (am *AudioManager) SetEnabled(enabled bool) {
	am.mu.Lock()
	defer am.mu.Unlock()

	am.enabled = enabled
	if !enabled || am.initialized || am.initFailed {
		return
	}

	if err := speaker.Init(audioSampleRate, audioSampleRate.N(100*time.Millisecond)); err != nil {
		am.initFailed = true
		log.Printf("[AudioManager] Warning: speaker init failed: %v (sound disabled)", err)
		return
	}
	am.initialized = true
	log.Printf("[AudioManager] speaker initialized at %d Hz", audioSampleRate)
}

// PlayBurst 播放火花爆发的爆裂音：噪声脉冲叠加低频正弦
func (am *AudioManager) PlayBurst() {
	am.mu.Lock()
	if !am.ready() || time.Since(am.lastBurst) < burstSoundCooldown {
		am.mu.Unlock()
		return
	}
	am.lastBurst = time.Now()
	am.mu.Unlock()

	// 每次爆裂的音高和响度略有差异
	body := 120.0 + rand.Float64()*60
	crackle := beep.Mix(
		newVolume(newTone(0, 90*time.Millisecond, waveNoise, 2*time.Millisecond, 70*time.Millisecond), 0.5),
		newVolume(newTone(body, 120*time.Millisecond, waveSine, 2*time.Millisecond, 100*time.Millisecond), 0.5),
	)
	speaker.Play(newVolume(crackle, 0.3))
}

// PlayStamp 播放形状盖章的双音确认
func (am *AudioManager) PlayStamp() {
	am.mu.Lock()
	ok := am.ready()
	am.mu.Unlock()
	if !ok {
		return
	}

	chime := beep.Seq(
		newVolume(newTone(660, 90*time.Millisecond, waveSquare, 4*time.Millisecond, 60*time.Millisecond), 0.5),
		newVolume(newTone(880, 120*time.Millisecond, waveSquare, 4*time.Millisecond, 90*time.Millisecond), 0.5),
	)
	speaker.Play(newVolume(chime, 0.25))
}

// Close 关闭音频输出
func (am *AudioManager) Close() {
	am.mu.Lock()
	defer am.mu.Unlock()
	if am.initialized {
		speaker.Clear()
	}
}

// ready 需持锁调用
func (am *AudioManager) ready() bool {
	return am.enabled && am.initialized
}

// newTone 生成一段带 attack/release 包络的波形
func newTone(freq float64, duration time.Duration, shape waveShape, attack, release time.Duration) beep.Streamer {
	return &envelope{
		inner: &oscillator{
			freq:  freq,
			total: audioSampleRate.N(duration),
			shape: shape,
			rate:  audioSampleRate,
		},
		attack:  audioSampleRate.N(attack),
		release: audioSampleRate.N(release),
		total:   audioSampleRate.N(duration),
	}
}

// newVolume 包装音量控制
// math.Log2(0) 为 -Inf，音量为 0 时直接静音
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// oscillator 生成原始波形的流
type oscillator struct {
	freq  float64
	phase float64
	pos   int
	total int
	shape waveShape
	rate  beep.SampleRate
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}

		var val float64
		switch o.shape {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case waveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope 对内部流施加线性 attack/release 包络
type envelope struct {
	inner   beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.inner.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.pos < e.attack && e.attack > 0 {
			vol = float64(e.pos) / float64(e.attack)
		}
		if remaining := e.total - e.pos; remaining < e.release && e.release > 0 {
			v := float64(remaining) / float64(e.release)
			if v < vol {
				vol = v
			}
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.inner.Err() }
