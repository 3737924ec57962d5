package routescsv

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/gocarina/gocsv"
	"github.com/jinzhu/copier"
	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/njdf"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RoutesCSV imports a route catalog export. Stops are encoded as
// "Name@lng,lat" pairs separated by "|", the path as space separated
// "lng,lat" points.
type RoutesCSV struct {
	rows   []routeRow
	filter *vm.Program
}

type routeRow struct {
	RouteID    string  `csv:"route_id"`
	Name       string  `csv:"name"`
	Sacco      string  `csv:"sacco"`
	Fare       float64 `csv:"fare"`
	HoursStart string  `csv:"hours_start"`
	HoursEnd   string  `csv:"hours_end"`
	Active     string  `csv:"active"`
	Stops      string  `csv:"stops"`
	Path       string  `csv:"path"`
}

// SetFilter compiles a row filter expression. Rows see routeId, name, sacco,
// fare and active; only rows the expression evaluates true for are imported.
func (r *RoutesCSV) SetFilter(expression string) error {
	program, err := expr.Compile(expression, expr.AsBool())
	if err != nil {
		return err
	}

	r.filter = program

	return nil
}

func (r *RoutesCSV) ParseFile(reader io.Reader) error {
	// Tolerate rows with missing trailing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		csvReader := csv.NewReader(in)
		csvReader.FieldsPerRecord = -1
		return csvReader
	})

	return gocsv.Unmarshal(reader, &r.rows)
}

// Routes converts the parsed rows into catalog documents, dropping rows the
// filter rejects.
func (r *RoutesCSV) Routes() []*njdf.Route {
	var routes []*njdf.Route

	for _, row := range r.rows {
		if row.RouteID == "" {
			log.Debug().Msg("Skipping row without a route_id")
			continue
		}

		if !r.rowAllowed(row) {
			continue
		}

		route := &njdf.Route{
			PrimaryIdentifier: row.RouteID,
			Name:              row.Name,
			SaccoName:         row.Sacco,
			Fare:              row.Fare,
			Stops:             parseStops(row.Stops),
			Path:              parsePath(row.Path),
			Active:            rowActive(row),
		}

		if row.HoursStart != "" && row.HoursEnd != "" {
			route.OperatingHours = &njdf.OperatingHours{
				Start: row.HoursStart,
				End:   row.HoursEnd,
			}
		}

		routes = append(routes, route)
	}

	return routes
}

func (r *RoutesCSV) Import(datasource *njdf.DataSource) error {
	routes := r.Routes()
	log.Info().Int("routes", len(routes)).Msg("Importing route catalog into Mongo")

	routesCollection := database.GetCollection("routes")

	identifiers := make([]string, 0, len(routes))
	for _, route := range routes {
		identifiers = append(identifiers, route.PrimaryIdentifier)
	}

	existing := map[string]*njdf.Route{}
	cursor, err := routesCollection.Find(context.Background(), bson.M{"primaryidentifier": bson.M{"$in": identifiers}})
	if err != nil {
		return err
	}

	for cursor.Next(context.TODO()) {
		var route *njdf.Route
		if err := cursor.Decode(&route); err != nil {
			log.Error().Err(err).Msg("Failed to decode Route")
			continue
		}

		existing[route.PrimaryIdentifier] = route
	}

	var operations []mongo.WriteModel
	var insertCount int
	var updateCount int

	now := time.Now()

	for _, route := range routes {
		if stored := existing[route.PrimaryIdentifier]; stored != nil {
			// Merge over the stored document so partial exports keep the
			// fields they do not carry
			merged := *stored
			if err := copier.CopyWithOption(&merged, *route, copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
				log.Error().Err(err).Str("route", route.PrimaryIdentifier).Msg("Failed to merge Route")
				continue
			}

			// copier treats false as empty so the retirement flag is carried by hand
			merged.Active = route.Active

			route = &merged
			updateCount += 1
		} else {
			route.CreationDateTime = now
			insertCount += 1
		}

		route.ModificationDateTime = now
		route.DataSource = datasource

		bsonRep, _ := bson.Marshal(bson.M{"$set": route})
		updateModel := mongo.NewUpdateOneModel()
		updateModel.SetFilter(bson.M{"primaryidentifier": route.PrimaryIdentifier})
		updateModel.SetUpdate(bsonRep)
		updateModel.SetUpsert(true)

		operations = append(operations, updateModel)
	}

	if len(operations) > 0 {
		if _, err := routesCollection.BulkWrite(context.Background(), operations, &options.BulkWriteOptions{}); err != nil {
			return err
		}
	}

	log.Info().Int("inserts", insertCount).Int("updates", updateCount).Msg("Route catalog import complete")

	return nil
}

func (r *RoutesCSV) rowAllowed(row routeRow) bool {
	if r.filter == nil {
		return true
	}

	result, err := expr.Run(r.filter, map[string]interface{}{
		"routeId": row.RouteID,
		"name":    row.Name,
		"sacco":   row.Sacco,
		"fare":    row.Fare,
		"active":  rowActive(row),
	})
	if err != nil {
		log.Error().Err(err).Str("routeId", row.RouteID).Msg("Row filter failed")
		return false
	}

	allowed, _ := result.(bool)

	return allowed
}

// Rows default to active, the column exists to retire routes.
func rowActive(row routeRow) bool {
	return row.Active != "false"
}

func parseStops(value string) []njdf.RouteStop {
	if value == "" {
		return nil
	}

	var stops []njdf.RouteStop

	for _, stopValue := range strings.Split(value, "|") {
		stopValue = strings.TrimSpace(stopValue)
		if stopValue == "" {
			continue
		}

		name := stopValue
		var location *njdf.Location

		if at := strings.LastIndex(stopValue, "@"); at != -1 {
			name = stopValue[:at]
			location = parsePoint(stopValue[at+1:])
		}

		stops = append(stops, njdf.RouteStop{
			Name:     name,
			Location: location,
		})
	}

	return stops
}

func parsePoint(value string) *njdf.Location {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return nil
	}

	longitude, longitudeErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	latitude, latitudeErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if longitudeErr != nil || latitudeErr != nil {
		return nil
	}

	return &njdf.Location{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}

func parsePath(value string) []float64 {
	if value == "" {
		return nil
	}

	var path []float64

	for _, pointValue := range strings.Fields(value) {
		point := parsePoint(pointValue)
		if point == nil {
			continue
		}

		path = append(path, point.Coordinates[0], point.Coordinates[1])
	}

	return path
}
