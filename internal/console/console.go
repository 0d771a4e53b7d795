package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"product-console/internal/entity"
	"strconv"
	"strings"
)

var ErrInvalidNumber = errors.New("invalid number")

const menu = "---Product Management Application--- \n" +
	" 1. Add Product \n" +
	" 2. Update Product \n" +
	" 3. Delete ProductById \n" +
	" 4. Get ProductById \n" +
	" 5. Get All Products "

// Option is a menu choice.
type Option int

const (
	OptionAdd Option = iota + 1
	OptionUpdatePrice
	OptionDelete
	OptionGet
	OptionList
)

func (o Option) String() string {
	switch o {
	case OptionAdd:
		return "add"
	case OptionUpdatePrice:
		return "update-price"
	case OptionDelete:
		return "delete"
	case OptionGet:
		return "get"
	case OptionList:
		return "list"
	default:
		return fmt.Sprintf("option(%d)", int(o))
	}
}

// ProductService is what the console needs from the service layer.
type ProductService interface {
	AddProduct(ctx context.Context, product *entity.Product) error
	UpdateProductPrice(ctx context.Context, productID int, price int) (int64, error)
	DeleteProduct(ctx context.Context, productID int) (int64, error)
	GetProduct(ctx context.Context, productID int) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]*entity.Product, error)
}

type Console struct {
	svc ProductService
	in  *bufio.Reader
	out io.Writer

	handlers map[Option]func(ctx context.Context) error
}

func New(svc ProductService, in io.Reader, out io.Writer) *Console {
	c := &Console{
		svc: svc,
		in:  bufio.NewReader(in),
		out: out,
	}
	c.handlers = map[Option]func(ctx context.Context) error{
		OptionAdd:         c.addProduct,
		OptionUpdatePrice: c.updatePrice,
		OptionDelete:      c.deleteProduct,
		OptionGet:         c.getProduct,
		OptionList:        c.listProducts,
	}
	return c
}

// Run shows the menu, reads one option and processes it. An option outside
// the menu is a silent no-op.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, menu)

	n, err := c.readInt("Enter your option number : ", "option")
	if err != nil {
		return err
	}

	handler, ok := c.handlers[Option(n)]
	if !ok {
		return nil
	}
	return handler(ctx)
}

func (c *Console) addProduct(ctx context.Context) error {
	var (
		product entity.Product
		err     error
	)
	if product.ID, err = c.readInt("Product ID : ", "product id"); err != nil {
		return err
	}
	if product.Name, err = c.readLine("Product Name : ", "product name"); err != nil {
		return err
	}
	if product.Price, err = c.readInt("Product Price : ", "product price"); err != nil {
		return err
	}
	if product.Description, err = c.readLine("Product Description : ", "product description"); err != nil {
		return err
	}
	if product.Category, err = c.readLine("Product Category : ", "product category"); err != nil {
		return err
	}

	if err := c.svc.AddProduct(ctx, &product); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Data inserted successfully")
	return nil
}

func (c *Console) updatePrice(ctx context.Context) error {
	id, err := c.readInt("Enter product Id for updating price : ", "product id")
	if err != nil {
		return err
	}
	price, err := c.readInt("Enter updated Price : ", "product price")
	if err != nil {
		return err
	}

	_, err = c.svc.UpdateProductPrice(ctx, id, price)
	return err
}

func (c *Console) deleteProduct(ctx context.Context) error {
	id, err := c.readInt("Enter product Id for deleting data : ", "product id")
	if err != nil {
		return err
	}

	_, err = c.svc.DeleteProduct(ctx, id)
	return err
}

func (c *Console) getProduct(ctx context.Context) error {
	id, err := c.readInt("Enter product Id to display data : ", "product id")
	if err != nil {
		return err
	}

	product, err := c.svc.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		fmt.Fprintln(c.out, "None")
		return nil
	}
	fmt.Fprintln(c.out, product)
	return nil
}

func (c *Console) listProducts(ctx context.Context) error {
	products, err := c.svc.ListProducts(ctx)
	if err != nil {
		return err
	}

	for _, p := range products {
		fmt.Fprintln(c.out, "ProductID : ", p.Field(entity.ColumnID))
		fmt.Fprintln(c.out, "Product Name : ", p.Field(entity.ColumnName))
		fmt.Fprintln(c.out, "Product Price : ", p.Field(entity.ColumnPrice))
		fmt.Fprintln(c.out, "Product Description : ", p.Field(entity.ColumnDescription))
		fmt.Fprintln(c.out, "Product Category : ", p.Field(entity.ColumnCategory))
	}
	return nil
}

// readLine prints prompt and returns the next input line without its line ending.
func (c *Console) readLine(prompt, field string) (string, error) {
	fmt.Fprint(c.out, prompt)

	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return "", fmt.Errorf("read %s: %w", field, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) readInt(prompt, field string) (int, error) {
	line, err := c.readLine(prompt, field)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w for %s: %q", ErrInvalidNumber, field, line)
	}
	return n, nil
}
