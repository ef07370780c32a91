package services

import (
	"fmt"
	"net/url"
	"strings"

	"food_delivery_backend/internal/models"
)

// FormatOrderMessage renders an order and its invoice into the text relayed
// to the business messaging channel. Pure formatting: itemized lines, the
// bill breakdown in computation order, the customer contact block and the
// payment status. Dispatching the text is the caller's concern.
func FormatOrderMessage(order *models.Order, invoice *models.Invoice) string {
	var b strings.Builder

	b.WriteString("*NEW ORDER - " + order.RestaurantName + "*\n\n")
	b.WriteString("Invoice No: " + invoice.InvoiceNumber + "\n\n")

	b.WriteString("*Items*\n")
	for i, item := range invoice.Items {
		fmt.Fprintf(&b, "%d. %s x%d = ₹%.2f\n", i+1, item.Name, item.Quantity, item.Total)
	}

	bill := invoice.Bill
	b.WriteString("\n*Bill Details*\n")
	fmt.Fprintf(&b, "Food Total: ₹%.2f\n", bill.FoodTotal)
	fmt.Fprintf(&b, "GST (%.0f%%): ₹%.2f\n", bill.GstPercent, bill.GstAmount)
	fmt.Fprintf(&b, "Platform Fee: ₹%.2f\n", bill.PlatformFee)
	fmt.Fprintf(&b, "Handling Charge: ₹%.2f\n", bill.HandlingCharge)
	fmt.Fprintf(&b, "Delivery Charge: ₹%.2f\n", bill.DeliveryCharge)
	b.WriteString("-----------------------\n")
	fmt.Fprintf(&b, "*GRAND TOTAL: ₹%.2f*\n", bill.GrandTotal)

	b.WriteString("\n*Delivery Details*\n")
	b.WriteString("Customer Name: " + invoice.Customer.Name + "\n")
	b.WriteString("Mobile: " + invoice.Customer.Mobile + "\n")
	b.WriteString("Address: " + invoice.Customer.Address + "\n")

	fmt.Fprintf(&b, "\nPayment Mode: %s\n", invoice.PaymentMethod)
	fmt.Fprintf(&b, "Payment Status: %s\n", invoice.PaymentStatus)

	return b.String()
}

// WhatsAppLink builds a click-to-chat URL for a pre-formatted message.
// No network call happens here.
func WhatsAppLink(phone, message string) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}
