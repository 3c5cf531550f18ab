// Command cofdmtx is the reference host for the COFDMTV transmitter core:
// it drives cofdm.Encoder end to end, either producing a WAV file, playing
// live through PortAudio, or running the demo HTTP+WebSocket control
// surface.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeongseonghan/cofdmtv/cofdm"
	"github.com/jeongseonghan/cofdmtv/internal/audiosink"
	"github.com/jeongseonghan/cofdmtv/internal/demoserver"
	"github.com/jeongseonghan/cofdmtv/internal/modes"
	"github.com/jeongseonghan/cofdmtv/internal/wavfile"
)

func main() {
	rate := flag.Int("rate", 8000, "sample rate (8000, 16000, 32000, 44100, 48000)")
	mode := flag.Int("mode", 0, "operation mode (0 = silence, 6-13 = payload-carrying)")
	call := flag.String("call", "CQ CQ CQ", "call sign (up to 9 alphanumerics, spaces skipped)")
	carrier := flag.Int("carrier", 1500, "carrier frequency in Hz")
	fancy := flag.Bool("fancy", false, "prepend the fancy call-sign header symbols")
	channel := flag.Int("channel", 0, "channel_select (0 mono, 1/2/4 stereo mappings)")
	out := flag.String("out", "", "write PCM to this WAV file")
	play := flag.Bool("play", false, "play PCM live through PortAudio")
	payloadPath := flag.String("payload", "", "path to a raw 5380-byte payload file (zero-filled if omitted)")
	listDevices := flag.Bool("list-devices", false, "list PortAudio devices and exit")
	serve := flag.Bool("serve", false, "run the demo HTTP+WebSocket control surface instead of transmitting once")
	addr := flag.String("addr", "0.0.0.0:8080", "demo server address (with -serve)")
	outDir := flag.String("out-dir", "./transmissions", "directory the demo server writes WAV files to (with -serve)")
	flag.Parse()

	if *listDevices {
		if err := audiosink.Init(); err != nil {
			log.Fatalf("init portaudio: %v", err)
		}
		defer audiosink.Terminate()
		devices, err := audiosink.ListDevices()
		if err != nil {
			log.Fatalf("list devices: %v", err)
		}
		for i, d := range devices {
			tag := ""
			if d.IsDefault {
				tag = " [default]"
			}
			fmt.Printf("%d: %s (out:%d rate:%.0f)%s\n", i, d.Name, d.MaxOutputChannels, d.DefaultSampleRate, tag)
		}
		return
	}

	if *serve {
		runServer(*addr, *outDir)
		return
	}

	payload := make([]byte, modes.PayloadBytes)
	if *payloadPath != "" {
		data, err := os.ReadFile(*payloadPath)
		if err != nil {
			log.Fatalf("read payload: %v", err)
		}
		if len(data) != modes.PayloadBytes {
			log.Fatalf("payload file must be %d bytes, got %d", modes.PayloadBytes, len(data))
		}
		payload = data
	}

	enc, err := cofdm.New(*rate)
	if err != nil {
		log.Fatalf("new encoder: %v", err)
	}
	if err := enc.Configure(payload, *call, *mode, *carrier, *fancy); err != nil {
		log.Fatalf("configure: %v", err)
	}

	channels := 1
	if *channel == 1 || *channel == 2 || *channel == 4 {
		channels = 2
	}

	var writer *wavfile.Writer
	var sink *audiosink.Sink
	switch {
	case *out != "":
		writer, err = wavfile.Create(*out, *rate, channels)
		if err != nil {
			log.Fatalf("create wav: %v", err)
		}
		defer writer.Close()
	case *play:
		if err := audiosink.Init(); err != nil {
			log.Fatalf("init portaudio: %v", err)
		}
		defer audiosink.Terminate()
		sink, err = audiosink.NewSink(*rate, channels)
		if err != nil {
			log.Fatalf("open sink: %v", err)
		}
		defer sink.Close()
	default:
		log.Fatalf("specify -out or -play")
	}

	buf := make([]int16, enc.FrameLen()*channels)
	symbols := 0
	for {
		ok, err := enc.Produce(buf, *channel)
		if err != nil {
			log.Fatalf("produce: %v", err)
		}
		if !ok {
			break
		}
		if writer != nil {
			if err := writer.Write(buf); err != nil {
				log.Fatalf("write wav: %v", err)
			}
		}
		if sink != nil {
			if err := sink.Write(buf); err != nil {
				log.Fatalf("play: %v", err)
			}
		}
		symbols++
	}
	log.Printf("cofdmtx: emitted %d symbols", symbols)
}

func runServer(addr, outDir string) {
	os.MkdirAll(outDir, 0755)
	handlers := demoserver.NewHandlers(outDir)
	srv := demoserver.NewServer(addr, handlers)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		os.Exit(0)
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
