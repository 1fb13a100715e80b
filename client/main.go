package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	MsgTypeCreateRoom = 101
	MsgTypeJoinRoom   = 102
	MsgTypeStartGame  = 103
	MsgTypeClaimToken = 104
	MsgTypeConfirm    = 105
	MsgTypeRoomState  = 301
)

var (
	codeMutex sync.Mutex
	roomCode  string
)

func setCode(code string) {
	codeMutex.Lock()
	roomCode = code
	codeMutex.Unlock()
}

func getCode() string {
	codeMutex.Lock()
	defer codeMutex.Unlock()
	return roomCode
}

// send frames and sends a message to the server.
func send(c *websocket.Conn, msgID uint16, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func main() {
	u := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop: print every snapshot and remember the room code.
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			if len(message) < 4 {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			msgID := binary.BigEndian.Uint16(message[0:2])
			data := message[4:]

			if msgID == MsgTypeRoomState {
				var snap struct {
					Code  string `json:"code"`
					Phase string `json:"phase"`
					Round int    `json:"round"`
				}
				if err := json.Unmarshal(data, &snap); err == nil {
					setCode(snap.Code)
					log.Printf("<- room %s phase=%s round=%d", snap.Code, snap.Phase, snap.Round)
				}
			}
			log.Printf("<- RECV (ID: %d): %s", msgID, string(data))
		}
	}()

	log.Println("Commands: create <name> | join <code> <name> | start | claim <index> | confirm")

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "create":
			if len(fields) < 2 {
				log.Println("usage: create <name>")
				continue
			}
			err = send(c, MsgTypeCreateRoom, map[string]string{"name": fields[1]})
		case "join":
			if len(fields) < 3 {
				log.Println("usage: join <code> <name>")
				continue
			}
			err = send(c, MsgTypeJoinRoom, map[string]string{"code": fields[1], "name": fields[2]})
		case "start":
			err = send(c, MsgTypeStartGame, map[string]string{"code": getCode()})
		case "claim":
			if len(fields) < 2 {
				log.Println("usage: claim <index>")
				continue
			}
			index, convErr := strconv.Atoi(fields[1])
			if convErr != nil {
				log.Println("claim index must be a number")
				continue
			}
			err = send(c, MsgTypeClaimToken, map[string]interface{}{"code": getCode(), "index": index})
		case "confirm":
			err = send(c, MsgTypeConfirm, map[string]string{"code": getCode()})
		default:
			log.Printf("Unknown command %q", fields[0])
			continue
		}

		if err != nil {
			log.Println("Write error:", err)
			return
		}
	}
}
