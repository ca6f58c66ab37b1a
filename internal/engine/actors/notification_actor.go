package actors

import (
	stdctx "context"
	"log"

	"campus-grove/internal/database"
	"campus-grove/internal/store"

	"github.com/asynkron/protoactor-go/actor"
)

// Message types for notification operations
type (
	// EmitMsg is sent fire-and-forget: emission never fails the operation
	// that triggered it.
	EmitMsg struct {
		Text string
	}

	ListNotificationsMsg struct{}

	loadFeedFromDBMsg struct{}
)

// NotificationActor is the single writer of the notification feed.
type NotificationActor struct {
	feed    *store.NotificationLog
	mongodb *database.MongoDB
}

func NewNotificationActor(feed *store.NotificationLog, mongodb *database.MongoDB) actor.Actor {
	return &NotificationActor{feed: feed, mongodb: mongodb}
}

func (a *NotificationActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("NotificationActor started")
		if a.mongodb != nil {
			context.Send(context.Self(), &loadFeedFromDBMsg{})
		}

	case *actor.Stopping:
		log.Printf("NotificationActor stopping")

	case *actor.Stopped:
		log.Printf("NotificationActor stopped")

	case *actor.Restarting:
		log.Printf("NotificationActor restarting")

	case *loadFeedFromDBMsg:
		if err := a.mongodb.LoadFeed(stdctx.Background(), a.feed); err != nil {
			log.Printf("NotificationActor: failed to load feed from database: %v", err)
			return
		}
		log.Printf("NotificationActor: loaded %d notifications from database", a.feed.Count())

	case *EmitMsg:
		n := a.feed.Append(msg.Text)
		if a.mongodb != nil {
			if err := a.mongodb.SaveNotification(stdctx.Background(), n); err != nil {
				log.Printf("NotificationActor: failed to mirror notification: %v", err)
			}
		}

	case *ListNotificationsMsg:
		// Records are immutable once appended, so sharing them is safe.
		context.Respond(a.feed.List())

	case *GetCountsMsg:
		context.Respond(a.feed.Count())
	}
}
