package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/gorilla/websocket"

	"github.com/wavely/chat-service/internal/domain"
)

func main() {
	server := flag.String("server", "ws://localhost:6789/chat/ws", "chat server websocket URL")
	roomName := flag.String("room", "test", "room to join")
	user := flag.String("user", "", "display name (required)")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "usage: client -user <name> [-room <room>] [-server <url>]")
		os.Exit(2)
	}

	conn, _, err := websocket.DefaultDialer.Dial(*server, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial %s: %v\n", *server, err)
		os.Exit(1)
	}
	defer conn.Close()

	connect := domain.ConnectMessage{Type: domain.MsgTypeConnect, Room: *roomName, User: *user}
	if err := conn.WriteJSON(&connect); err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				return
			}
			printFrame(frame)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := scanner.Text()
		if text == "" {
			continue
		}
		msg := domain.SendMessage{Type: domain.MsgTypeSendMessage, Text: text}
		if err := conn.WriteJSON(&msg); err != nil {
			break
		}
	}

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	<-done
}

func printFrame(frame []byte) {
	var base domain.BaseMessage
	if err := json.Unmarshal(frame, &base); err != nil {
		return
	}

	switch base.Type {
	case domain.MsgTypeMessage:
		var msg domain.MessageBroadcast
		if err := json.Unmarshal(frame, &msg); err != nil {
			return
		}
		fmt.Printf("[%s] %s\n", msg.User, msg.Text)

	case domain.MsgTypeJoined:
		var msg domain.JoinedBroadcast
		if err := json.Unmarshal(frame, &msg); err != nil {
			return
		}
		fmt.Printf("* %s joined\n", msg.User)

	case domain.MsgTypeLeft:
		var msg domain.LeftBroadcast
		if err := json.Unmarshal(frame, &msg); err != nil {
			return
		}
		fmt.Printf("* %s left\n", msg.User)
	}
}
