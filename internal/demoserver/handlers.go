package demoserver

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeongseonghan/cofdmtv/cofdm"
	"github.com/jeongseonghan/cofdmtv/internal/wavfile"
)

// Handlers holds the demo HTTP API state: one active transmission at a
// time, guarded by mu.
type Handlers struct {
	wsHub  *WSHub
	outDir string
	mu     sync.Mutex
	active bool
}

// NewHandlers creates demo API handlers that write completed transmissions'
// WAV files under outDir.
func NewHandlers(outDir string) *Handlers {
	return &Handlers{wsHub: NewWSHub(), outDir: outDir}
}

// HandleWebSocket upgrades the connection and registers it with the hub.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("demoserver: upgrade error: %v", err)
		return
	}
	h.wsHub.AddClient(conn)
	go func() {
		defer h.wsHub.RemoveClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// transmitRequest is the POST /api/transmit body.
type transmitRequest struct {
	SampleRate       int    `json:"sampleRate"`
	CallSign         string `json:"callSign"`
	OperationMode    int    `json:"operationMode"`
	CarrierFrequency int    `json:"carrierFrequency"`
	FancyHeader      bool   `json:"fancyHeader"`
	ChannelSelect    int    `json:"channelSelect"`
	Payload          []byte `json:"payload"` // base64 via encoding/json
	OutFile          string `json:"outFile"`
}

// HandleTransmit starts one transmission in the background, streaming
// progress over every connected WebSocket client and writing the resulting
// PCM to a WAV file under h.outDir.
func (h *Handlers) HandleTransmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req transmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("parse request: %v", err), http.StatusBadRequest)
		return
	}
	if req.OutFile == "" {
		req.OutFile = "transmission.wav"
	}

	h.mu.Lock()
	if h.active {
		h.mu.Unlock()
		http.Error(w, "a transmission is already in progress", http.StatusConflict)
		return
	}
	h.active = true
	h.mu.Unlock()

	go h.runTransmission(req)

	json.NewEncoder(w).Encode(map[string]string{"status": "started"})
}

func (h *Handlers) runTransmission(req transmitRequest) {
	defer func() {
		h.mu.Lock()
		h.active = false
		h.mu.Unlock()
	}()

	h.wsHub.BroadcastStatus("configuring", "Building transmitter...")
	enc, err := cofdm.New(req.SampleRate)
	if err != nil {
		h.wsHub.BroadcastStatus("error", fmt.Sprintf("new encoder: %v", err))
		return
	}
	if err := enc.Configure(req.Payload, req.CallSign, req.OperationMode, req.CarrierFrequency, req.FancyHeader); err != nil {
		h.wsHub.BroadcastStatus("error", fmt.Sprintf("configure: %v", err))
		return
	}

	os.MkdirAll(h.outDir, 0755)
	channels := 1
	if req.ChannelSelect == 1 || req.ChannelSelect == 2 || req.ChannelSelect == 4 {
		channels = 2
	}
	out, err := wavfile.Create(filepath.Join(h.outDir, req.OutFile), req.SampleRate, channels)
	if err != nil {
		h.wsHub.BroadcastStatus("error", fmt.Sprintf("create wav: %v", err))
		return
	}
	defer out.Close()

	h.wsHub.BroadcastStatus("transmitting", "Producing symbols...")
	buf := make([]int16, enc.FrameLen()*channels)
	symbolsEmitted := 0
	for {
		ok, err := enc.Produce(buf, req.ChannelSelect)
		if err != nil {
			h.wsHub.BroadcastStatus("error", fmt.Sprintf("produce: %v", err))
			return
		}
		if !ok {
			break
		}
		if err := out.Write(buf); err != nil {
			h.wsHub.BroadcastStatus("error", fmt.Sprintf("write wav: %v", err))
			return
		}
		symbolsEmitted++
		h.wsHub.BroadcastProgress("transmitting", "symbol emitted", symbolsEmitted, 0)
	}

	h.wsHub.BroadcastStatus("completed", fmt.Sprintf("Transmission complete: %d symbols", symbolsEmitted))
}

// HandleStatus reports whether a transmission is currently active.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	active := h.active
	h.mu.Unlock()

	status := "idle"
	if active {
		status = "active"
	}
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
