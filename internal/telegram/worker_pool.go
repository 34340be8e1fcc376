package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tikscope/tikscope/internal/logger"
)

// WorkerPool fans inbound updates out to a bounded set of goroutines. Events
// from different users may run concurrently; same-user ordering around the
// quota is enforced deeper down by the pipeline's per-user lock, so the pool
// itself stays simple.
type WorkerPool struct {
	bot           *Bot
	messageQueue  chan *tgbotapi.Message
	callbackQueue chan *tgbotapi.CallbackQuery
	workerCount   int

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	mu      sync.RWMutex
}

type WorkerPoolConfig struct {
	Workers           int // workers shared across messages and callbacks
	MessageQueueSize  int
	CallbackQueueSize int
}

func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		Workers:           8,
		MessageQueueSize:  100,
		CallbackQueueSize: 100,
	}
}

func NewWorkerPool(bot *Bot, config WorkerPoolConfig) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		bot:           bot,
		messageQueue:  make(chan *tgbotapi.Message, config.MessageQueueSize),
		callbackQueue: make(chan *tgbotapi.CallbackQuery, config.CallbackQueueSize),
		workerCount:   config.Workers,
		ctx:           ctx,
		cancel:        cancel,
	}
}

func (wp *WorkerPool) Start() error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.started {
		return fmt.Errorf("worker pool already started")
	}

	logger.Info("Starting worker pool", map[string]interface{}{
		"workers":             wp.workerCount,
		"message_queue_size":  cap(wp.messageQueue),
		"callback_queue_size": cap(wp.callbackQueue),
	})

	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}

	wp.started = true
	return nil
}

func (wp *WorkerPool) Stop() error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if !wp.started {
		return fmt.Errorf("worker pool not started")
	}

	logger.InfoMsg("Stopping worker pool...")

	close(wp.messageQueue)
	close(wp.callbackQueue)
	wp.cancel()

	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.InfoMsg("Worker pool stopped gracefully")
	case <-time.After(30 * time.Second):
		logger.WarnMsg("Worker pool shutdown timed out")
		return fmt.Errorf("worker pool shutdown timed out")
	}

	wp.started = false
	return nil
}

// SubmitMessage queues a message for processing; a full queue drops it.
func (wp *WorkerPool) SubmitMessage(message *tgbotapi.Message) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if !wp.started {
		return fmt.Errorf("worker pool not started")
	}

	select {
	case wp.messageQueue <- message:
		return nil
	case <-wp.ctx.Done():
		return fmt.Errorf("worker pool is shutting down")
	default:
		logger.Warn("Message queue full, dropping message", map[string]interface{}{
			"chat_id": message.Chat.ID,
		})
		return fmt.Errorf("message queue full")
	}
}

// SubmitCallback queues a callback for processing; a full queue drops it.
func (wp *WorkerPool) SubmitCallback(callback *tgbotapi.CallbackQuery) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if !wp.started {
		return fmt.Errorf("worker pool not started")
	}

	select {
	case wp.callbackQueue <- callback:
		return nil
	case <-wp.ctx.Done():
		return fmt.Errorf("worker pool is shutting down")
	default:
		logger.Warn("Callback queue full, dropping callback", map[string]interface{}{
			"chat_id":     callback.Message.Chat.ID,
			"callback_id": callback.ID,
		})
		return fmt.Errorf("callback queue full")
	}
}

// worker drains both queues until they close or the context is cancelled.
func (wp *WorkerPool) worker(workerID int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Worker panic recovered", map[string]interface{}{
				"worker_id": workerID,
				"panic":     r,
			})
		}
		wp.wg.Done()
	}()

	for {
		select {
		case message, ok := <-wp.messageQueue:
			if !ok {
				return
			}
			wp.processMessage(message, workerID)
		case callback, ok := <-wp.callbackQueue:
			if !ok {
				return
			}
			wp.processCallback(callback, workerID)
		case <-wp.ctx.Done():
			return
		}
	}
}

func (wp *WorkerPool) processMessage(message *tgbotapi.Message, workerID int) {
	if message == nil {
		return
	}
	start := time.Now()

	if err := wp.bot.handleMessage(message); err != nil {
		logger.Error("Error processing message", map[string]interface{}{
			"worker_id": workerID,
			"error":     err.Error(),
			"chat_id":   message.Chat.ID,
		})
	}

	logger.Debug("Message processed", map[string]interface{}{
		"worker_id": workerID,
		"chat_id":   message.Chat.ID,
		"duration":  time.Since(start).String(),
	})
}

func (wp *WorkerPool) processCallback(callback *tgbotapi.CallbackQuery, workerID int) {
	if callback == nil {
		return
	}
	start := time.Now()

	if err := wp.bot.handleCallbackQuery(callback); err != nil {
		logger.Error("Error processing callback", map[string]interface{}{
			"worker_id":   workerID,
			"error":       err.Error(),
			"chat_id":     callback.Message.Chat.ID,
			"callback_id": callback.ID,
		})
	}

	logger.Debug("Callback processed", map[string]interface{}{
		"worker_id": workerID,
		"chat_id":   callback.Message.Chat.ID,
		"duration":  time.Since(start).String(),
	})
}

// GetStats returns current worker pool statistics
func (wp *WorkerPool) GetStats() map[string]interface{} {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	return map[string]interface{}{
		"started":                 wp.started,
		"workers":                 wp.workerCount,
		"message_queue_size":      len(wp.messageQueue),
		"callback_queue_size":     len(wp.callbackQueue),
		"message_queue_capacity":  cap(wp.messageQueue),
		"callback_queue_capacity": cap(wp.callbackQueue),
	}
}
