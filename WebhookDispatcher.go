package main

import (
	"bytes"
	json "github.com/bytedance/sonic"
	"go.uber.org/zap"
	"net/http"
	"sheetCalc/contracts"
	"sync"
	"time"
)

type SheetWebhooks map[string]string

type WebhookSendCommand struct {
	Webhook string
	Cell    *contracts.Cell
}

type WebhookDispatcher struct {
	queue        chan WebhookSendCommand
	done         chan struct{}
	webhooks     map[string]SheetWebhooks
	mutex        sync.RWMutex
	workersCount int
	client       *http.Client
	workers      sync.WaitGroup
	logger       *zap.Logger
}

func NewWebhookDispatcher(workersCount int, queueSize int, timeout time.Duration, logger *zap.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{
		queue:        make(chan WebhookSendCommand, queueSize),
		done:         make(chan struct{}),
		webhooks:     map[string]SheetWebhooks{},
		workersCount: workersCount,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (manager *WebhookDispatcher) SetWebhookUrl(sheetId string, label string, webhookUrl string) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	if _, ok := manager.webhooks[sheetId]; !ok {
		manager.webhooks[sheetId] = SheetWebhooks{}
	}

	if webhookUrl == "" {
		delete(manager.webhooks[sheetId], label)
	} else {
		manager.webhooks[sheetId][label] = webhookUrl
	}
}

func (manager *WebhookDispatcher) GetWebhookUrl(sheetId string, label string) string {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	return manager.webhooks[sheetId][label]
}

func (manager *WebhookDispatcher) Notify(sheetId string, cells []*contracts.Cell) {
	commands := make([]WebhookSendCommand, 0, len(cells))

	manager.mutex.RLock()
	for _, cell := range cells {
		if webhook, ok := manager.webhooks[sheetId][cell.Label]; ok {
			commands = append(commands, WebhookSendCommand{
				Webhook: webhook,
				Cell:    cell,
			})
		}
	}
	manager.mutex.RUnlock()

	if len(commands) != 0 {
		go manager.addToQueue(commands)
	}
}

func (manager *WebhookDispatcher) addToQueue(commands []WebhookSendCommand) {
	for _, command := range commands {
		select {
		case manager.queue <- command:
		case <-manager.done:
			return
		}
	}
}

func (manager *WebhookDispatcher) Start() {
	for i := 0; i < manager.workersCount; i++ {
		manager.workers.Add(1)
		go manager.runWebhookSenderWorker()
	}
}

func (manager *WebhookDispatcher) Close() {
	close(manager.done)
	manager.workers.Wait()
}

func (manager *WebhookDispatcher) runWebhookSenderWorker() {
	defer manager.workers.Done()

	for {
		select {
		case command := <-manager.queue:
			manager.send(command)
		case <-manager.done:
			return
		}
	}
}

func (manager *WebhookDispatcher) send(command WebhookSendCommand) {
	payload, err := json.Marshal(command.Cell)
	if err != nil {
		manager.logger.Error("webhook payload error", zap.Error(err))
		return
	}

	response, err := manager.client.Post(command.Webhook, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		manager.logger.Warn("webhook send error", zap.String("webhook", command.Webhook), zap.Error(err))
		return
	}
	_ = response.Body.Close()

	if response.StatusCode >= 300 {
		manager.logger.Warn("unexpected webhook response",
			zap.String("webhook", command.Webhook),
			zap.String("status", response.Status),
		)
	}
}
