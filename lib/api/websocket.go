package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

const writeTimeout = 10 * time.Second

// @Summary	Open websocket for realtime status information
// @Router		/api/ws [get]
// @Param		Upgrade	header	string	true	"websocket"
// @Tags		base
// @Success	101
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't make websocket: %s", err), 400)
		return
	}
	defer func(ws *websocket.Conn) {
		err := ws.Close()
		if err != nil {
			log.Printf("could not close websocket: %s\n", err.Error())
		}
	}(ws)

	a.wsMutex.Lock()
	a.wsClients[ws] = true
	a.Stats.SetWsClients(len(a.wsClients))
	a.wsMutex.Unlock()

	done := make(chan struct{})
	go a.websocketWriter(ws, done)

	for {
		_, _, err := ws.ReadMessage()
		if err != nil {
			break
		}
	}
	close(done)

	a.wsMutex.Lock()
	delete(a.wsClients, ws)
	a.Stats.SetWsClients(len(a.wsClients))
	a.wsMutex.Unlock()
}

func (a *Api) websocketWriter(ws *websocket.Conn, done <-chan struct{}) {
	pingTicker := time.NewTicker(2 * time.Second)
	defer pingTicker.Stop()

	for {
		packet, err := json.Marshal(a.Stats.Snapshot())
		if err != nil {
			return
		}
		if err := a.write(ws, packet); err != nil {
			return
		}

		select {
		case <-done:
			return
		case <-pingTicker.C:
		}
	}
}

func (a *Api) broadcast(packet []byte) {
	a.wsMutex.Lock()
	clients := make([]*websocket.Conn, 0, len(a.wsClients))
	for ws := range a.wsClients {
		clients = append(clients, ws)
	}
	a.wsMutex.Unlock()

	for _, ws := range clients {
		if err := a.write(ws, packet); err != nil {
			log.Printf("could not send to websocket: %s\n", err.Error())
		}
	}
}

// write serialises writers, gorilla connections allow only one at a time
func (a *Api) write(ws *websocket.Conn, packet []byte) error {
	a.wsMutex.Lock()
	defer a.wsMutex.Unlock()
	err := ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err != nil {
		return err
	}
	return ws.WriteMessage(websocket.TextMessage, packet)
}
