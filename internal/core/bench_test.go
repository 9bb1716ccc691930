package core

import (
	"strconv"
	"testing"
)

func BenchmarkDedupWindowRecord(b *testing.B) {
	window := newDedupWindow()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		window.recordIfNew(strconv.Itoa(i))
	}
}

func BenchmarkRouteUserMessage(b *testing.B) {
	store := NewRoomStore()
	groups := newGroupTable()
	router := newMessageRouter(store, groups)

	sender := NewClient("sender")
	store.Join("bench", "sender")
	groups.join("bench", sender)

	for i := 0; i < 16; i++ {
		name := "user" + strconv.Itoa(i)
		c := NewClient(name)
		store.Join("bench", name)
		groups.join("bench", c)
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		msg := Message{ID: strconv.Itoa(i)}
		if err := router.RouteUserMessage("bench", msg, sender); err != nil {
			b.Fatal(err)
		}
	}
}
