package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/estate-leads/internal/models"
)

// ListProperties возвращает список объектов недвижимости с пагинацией.
func (s *Storage) ListProperties(ctx context.Context, limit, offset int) ([]*models.Property, error) {
	const op = "storage.ListProperties"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, street_num, street_name, city, state, zip, price, beds, baths,
			      sqft, year_built, listing_date, description, est_value
			  FROM properties
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Property
	for rows.Next() {
		var item models.Property
		if err := rows.Scan(&item.ID, &item.StreetNum, &item.StreetName, &item.City,
			&item.State, &item.Zip, &item.Price, &item.Beds, &item.Baths, &item.Sqft,
			&item.YearBuilt, &item.ListingDate, &item.Description, &item.EstValue); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReadProperty возвращает объект недвижимости по его ID.
func (s *Storage) ReadProperty(ctx context.Context, id int) (*models.Property, error) {
	const op = "storage.ReadProperty"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, street_num, street_name, city, state, zip, price, beds, baths,
			      sqft, year_built, listing_date, description, est_value
			  FROM properties WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Property
	if err := row.Scan(&result.ID, &result.StreetNum, &result.StreetName, &result.City,
		&result.State, &result.Zip, &result.Price, &result.Beds, &result.Baths, &result.Sqft,
		&result.YearBuilt, &result.ListingDate, &result.Description, &result.EstValue); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListAuctions возвращает список аукционных записей с пагинацией.
func (s *Storage) ListAuctions(ctx context.Context, limit, offset int) ([]*models.Auction, error) {
	const op = "storage.ListAuctions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, auction_id, property_id, auction_date, opening_bid, courthouse,
			      trustee_name, case_number
			  FROM auctions
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Auction
	for rows.Next() {
		var item models.Auction
		if err := rows.Scan(&item.ID, &item.AuctionID, &item.PropertyID, &item.AuctionDate,
			&item.OpeningBid, &item.Courthouse, &item.TrusteeName, &item.CaseNumber); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListOwners возвращает список собственников с пагинацией.
func (s *Storage) ListOwners(ctx context.Context, limit, offset int) ([]*models.Owner, error) {
	const op = "storage.ListOwners"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, property_id, first_name, last_name, mailing_address, phone, email,
			      owner_type, notes
			  FROM owners
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Owner
	for rows.Next() {
		var item models.Owner
		if err := rows.Scan(&item.ID, &item.PropertyID, &item.FirstName, &item.LastName,
			&item.MailingAddress, &item.Phone, &item.Email, &item.OwnerType, &item.Notes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListLoans возвращает список займов с пагинацией.
func (s *Storage) ListLoans(ctx context.Context, limit, offset int) ([]*models.Loan, error) {
	const op = "storage.ListLoans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, property_id, lender_name, loan_amount, interest_rate,
			      origination_date, loan_type, position
			  FROM loans
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Loan
	for rows.Next() {
		var item models.Loan
		if err := rows.Scan(&item.ID, &item.PropertyID, &item.LenderName, &item.LoanAmount,
			&item.InterestRate, &item.OriginationDate, &item.LoanType, &item.Position); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
