// Package ports defines the contracts between the fulfillment core and its
// infrastructure: transactional repositories, the unit of work, the clock
// and the notification trigger.
package ports
