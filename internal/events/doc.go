// Package events provides the synchronous publish/subscribe bus that couples
// the storefront's application state, views and presenter.
//
// # Delivery
//
// Emit delivers a payload to every active subscriber whose registration
// matches the event name: exact-name subscribers registered with On, and
// pattern subscribers registered with OnPattern or OnAll. Delivery happens
// on the caller's goroutine, in registration order, before Emit returns.
//
// Delivery is reentrant. A handler may emit further events; those are fully
// processed (depth-first) before control returns to the handler that emitted
// them, and before the outer Emit moves on to its next subscriber.
//
// # Subscription lifecycle
//
// On, OnPattern and OnAll return a Subscription handle. Go functions are not
// comparable, so unsubscribing is done with Off(handle) rather than by
// passing the handler again. A handler that subscribes during an Emit does
// not receive the event being delivered; a handler removed during an Emit
// does not receive it either if it has not been reached yet.
//
// # Typed payloads
//
// Listen wraps a handler that expects a concrete payload type. Payloads of
// another type are ignored, which lets several payload shapes share a bus
// without string-pattern routing.
package events
