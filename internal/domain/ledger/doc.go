// Package ledger holds the pure money and date rules behind orders, receipts,
// loans and reports. Amounts are integer cents. Nothing here touches storage;
// repositories apply the same rules atomically in SQL.
package ledger
