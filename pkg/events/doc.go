/*
Package events provides an in-memory broker for channel lifecycle
notifications.

Channels publish when they are created or destroyed, when suppliers and
consumers attach or detach, when a delivery fails and when the admin
channel resets failed events. The server logs every notification and the
admin gRPC service streams them to `eventd watch`.

Publish never blocks: the broker buffers up to 256 pending notifications
and each subscriber up to 64. Notifications that do not fit are dropped,
so subscribers must not rely on seeing every one of them.

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	defer broker.Unsubscribe(sub)

	for ev := range sub {
		fmt.Println(ev.Type, ev.Channel)
	}
*/
package events
