// Package notifier delivers reminder text to the habitrack tray companion.
// The tray publishes "port|pid|secret" in a lockfile; when it is not
// running the message is written to a fallback writer instead.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// ErrTrayNotRunning means no live tray process owns the lockfile
var ErrTrayNotRunning = errors.New(constants.TrayExecutablePrefix + " is not running")

type Notifier struct {
	fallback   io.Writer
	client     *http.Client
	retryDelay time.Duration
}

type WebhookPayload struct {
	// ID lets the tray drop duplicates when a retry follows a slow success
	ID         string `json:"id"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// New returns a Notifier that prints to fallback when the tray is
// unavailable. A nil fallback only logs.
func New(fallback io.Writer) *Notifier {
	return &Notifier{
		fallback:   fallback,
		client:     &http.Client{Timeout: 5 * time.Second},
		retryDelay: constants.NotifyRetryDelay,
	}
}

// Notify posts text to the tray, falling back to the writer. Only a tray
// that is running but rejects the notification yields an error.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	port, secret, err := locateTray()
	if err != nil {
		logger.Debug("Tray unavailable, using fallback", "reason", err)
		n.writeFallback(text)
		return nil
	}

	payload := WebhookPayload{
		ID:         uuid.NewString(),
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}

	var lastErr error
	for attempt := 1; attempt <= constants.NotifyMaxRetries; attempt++ {
		lastErr = n.send(ctx, port, secret, payload)
		if lastErr == nil {
			return nil
		}
		logger.Debug("Notification attempt failed", "attempt", attempt, "error", lastErr)
		if attempt == constants.NotifyMaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.retryDelay):
		}
	}

	n.writeFallback(text)
	return lastErr
}

func (n *Notifier) writeFallback(text string) {
	logger.Info("Reminder", "text", text)
	if n.fallback != nil {
		fmt.Fprintf(n.fallback, "[%s] %s\n", time.Now().Format(constants.TimeFormat), text)
	}
}

// TrayStatus returns nil when a tray companion is running, otherwise the
// reason notifications would fall back to the terminal.
func TrayStatus() error {
	_, _, err := locateTray()
	return err
}

func locateTray() (string, string, error) {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return "", "", err
	}
	return findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
}

// GetTrayAppConfigDir returns the directory holding the tray lockfile. The
// tray may override it with settings.lockfile_dir in its settings.json.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err == nil {
		var store struct {
			Settings struct {
				LockfileDir *string `json:"lockfile_dir"`
			} `json:"settings"`
		}
		if err := json.Unmarshal(data, &store); err == nil {
			if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
				return *store.Settings.LockfileDir, nil
			}
		}
	}

	return trayConfigDir, nil
}

func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, process.Executable())
	}

	return port, secret, nil
}

func (n *Notifier) send(ctx context.Context, port, secret string, payload WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://127.0.0.1:%s", port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Habitrack-Secret", secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
