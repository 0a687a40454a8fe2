package entities

import "time"

// NotificationType tags what triggered a notification
type NotificationType string

const (
	NotificationOrderPlaced         NotificationType = "ORDER_PLACED"
	NotificationOrderReceived       NotificationType = "ORDER_RECEIVED"
	NotificationOrderRequested      NotificationType = "ORDER_REQUESTED"
	NotificationOrderStatusUpdated  NotificationType = "ORDER_STATUS_UPDATED"
	NotificationOrderCancelled      NotificationType = "ORDER_CANCELLED"
	NotificationShopApproved        NotificationType = "SHOP_APPROVED"
	NotificationShopRejected        NotificationType = "SHOP_REJECTED"
	NotificationWarehouseApproved   NotificationType = "WAREHOUSE_APPROVED"
	NotificationWarehouseRejected   NotificationType = "WAREHOUSE_REJECTED"
	NotificationRoleRequestApproved NotificationType = "ROLE_REQUEST_APPROVED"
	NotificationRoleRequestRejected NotificationType = "ROLE_REQUEST_REJECTED"
)

// Notification is a message delivered to a single user
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
}
