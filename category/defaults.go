package category

import "finanzas/api/models"

// Defaults returns the seed categories for the shared scope. The
// keyword lists lean Colombian Spanish because that is where the user
// base lives; learning extends them per user over time.
func Defaults() []models.Category {
	return []models.Category{
		{
			Name:        "Alimentación",
			Type:        models.TypeExpense,
			Icon:        "🍔",
			Description: "Comidas, snacks, bebidas y supermercado",
			IsDefault:   true,
			Keywords: []string{
				"comida", "almuerzo", "cena", "desayuno", "brunch", "merienda",
				"restaurante", "cafeteria", "fonda", "panaderia",
				"mercado", "supermercado", "tienda", "minimercado", "exito", "carulla", "olimpica",
				"pizza", "hamburguesa", "pollo", "perro", "hotdog", "empanada", "arepa",
				"tacos", "burrito", "wrap", "sanduche", "sandwich", "subway",
				"mcdonalds", "burger king", "kfc", "dominos", "papa johns",
				"helado", "helados", "dulce", "postre", "snack", "galletas", "chocolate",
				"torta", "pastel",
				"café", "starbucks", "juan valdez", "oma", "tostao",
				"bebida", "refresco", "gaseosa", "coca cola", "pepsi", "jugo", "agua", "smoothie",
				"sushi", "pasta", "arroz", "sopa", "caldo", "bandeja", "corrientazo",
				"carne", "pescado", "mariscos", "frutas", "verduras", "vegetales",
				"pan", "huevos", "lacteos", "leche", "queso", "yogurt", "mantequilla",
				"cereal", "avena", "granola", "aceite", "azucar", "condimentos",
				"cerveza", "vino", "licor", "trago", "whisky", "ron", "vodka", "tequila",
				"aguardiente", "cantina",
			},
		},
		{
			Name:        "Transporte",
			Type:        models.TypeExpense,
			Icon:        "🚗",
			Description: "Movilidad, combustible y estacionamiento",
			IsDefault:   true,
			Keywords: []string{
				"taxi", "uber", "didi", "cabify", "beat", "indriver", "picap",
				"gasolina", "combustible", "tanqueo", "tanqueada", "acpm", "diesel",
				"terpel", "mobil", "esso", "petrobras",
				"bus", "buseta", "colectivo", "metro", "transmilenio", "sitp", "mio",
				"pasaje", "transporte", "recarga", "tullave", "civica",
				"parqueadero", "parqueo", "estacionamiento", "peaje", "parquimetro",
				"moto", "bicicleta", "bici", "patineta", "scooter", "patinete",
				"tren", "avion", "vuelo", "aeropuerto", "terminal", "pasaje aereo",
				"mecanico", "taller", "cambio aceite", "llantas", "frenos", "bateria",
				"lavadero", "alineacion", "balanceo", "revision tecnicomecanica",
			},
		},
		{
			Name:        "Entretenimiento",
			Type:        models.TypeExpense,
			Icon:        "🎮",
			Description: "Ocio, streaming, salidas y diversión",
			IsDefault:   true,
			Keywords: []string{
				"netflix", "spotify", "prime", "amazon prime", "hbo", "hbo max", "disney", "disney plus",
				"youtube", "youtube premium", "twitch", "crunchyroll", "paramount", "star plus",
				"apple music", "deezer", "tidal", "suscripcion", "membresia",
				"cine", "pelicula", "cinemark", "procinal", "cinepolis", "royal films",
				"teatro", "obra", "funcion",
				"concierto", "show", "evento", "festival", "feria", "boleta", "entrada",
				"bar", "discoteca", "club", "fiesta", "rumba", "parranda",
				"parque", "diversiones", "circo", "zoologico", "acuario",
				"museo", "exposicion", "galeria", "planetario",
				"salida", "paseo", "plan", "actividad", "tour", "excursion",
				"juego", "videojuego", "xbox", "playstation", "ps5", "ps4", "nintendo", "switch",
				"steam", "epic games", "fortnite", "valorant", "fifa", "minecraft",
				"casino", "apuesta", "loteria", "chance", "baloto", "poker", "ruleta",
				"betplay", "codere", "wplay",
			},
		},
		{
			Name:        "Salud",
			Type:        models.TypeExpense,
			Icon:        "⚕️",
			Description: "Medicina, consultas y cuidado médico",
			IsDefault:   true,
			Keywords: []string{
				"farmacia", "drogueria", "cruz verde", "cafam", "colsubsidio",
				"medicina", "medicamento", "droga", "pastilla", "jarabe", "capsula",
				"vitamina", "suplemento", "proteina", "creatina",
				"antibiotico", "analgesico", "ibuprofeno", "acetaminofen", "dolex",
				"doctor", "medico", "consulta", "cita", "control", "chequeo",
				"especialista", "pediatra", "ginecologo", "cardiologo", "dermatologo",
				"hospital", "clinica", "centro medico", "urgencias", "emergencia",
				"dentista", "odontologo", "ortodoncia", "brackets", "limpieza dental",
				"muela",
				"terapia", "fisioterapia", "rehabilitacion",
				"psicologo", "psiquiatra", "psicologia",
				"examen", "laboratorio", "analisis", "radiografia", "ecografia", "resonancia",
				"cirugia", "operacion", "tratamiento", "procedimiento", "hospitalizacion",
				"eps", "medicina prepagada", "sanitas", "sura", "compensar",
			},
		},
		{
			Name:        "Educación",
			Type:        models.TypeExpense,
			Icon:        "📚",
			Description: "Estudios, cursos y material educativo",
			IsDefault:   true,
			Keywords: []string{
				"libro", "libros", "libreria", "texto", "manual", "guia",
				"curso", "clase", "taller", "seminario", "capacitacion", "certificacion",
				"diplomado", "especializacion", "bootcamp",
				"universidad", "colegio", "escuela", "instituto", "academia",
				"jardin", "guarderia", "preescolar",
				"matricula", "pension", "mensualidad", "colegiatura", "inscripcion",
				"estudio", "carrera", "pregrado", "maestria", "posgrado", "doctorado",
				"tecnico", "tecnologo",
				"udemy", "coursera", "platzi", "domestika", "edx", "skillshare", "crehana",
				"cuaderno", "lapiz", "esfero", "marcador", "colores",
				"utiles", "papeleria", "fotocopias", "impresiones", "anillado",
				"mochila", "lonchera", "uniforme",
			},
		},
		{
			Name:        "Servicios",
			Type:        models.TypeExpense,
			Icon:        "🏠",
			Description: "Servicios públicos, vivienda y cuidado personal",
			IsDefault:   true,
			Keywords: []string{
				"luz", "energia", "electricidad", "epm", "codensa", "enel",
				"agua", "acueducto", "alcantarillado", "aseo",
				"gas", "gas natural", "pipeta",
				"internet", "wifi", "fibra", "banda ancha",
				"telefono", "celular", "movil", "minutos", "datos", "gigas",
				"claro", "movistar", "tigo", "wom", "virgin",
				"cable", "television", "directv",
				"arriendo", "alquiler", "renta", "canon", "arrendamiento",
				"administracion", "conjunto", "edificio",
				"hipoteca", "credito vivienda", "cuota",
				"peluqueria", "barberia", "salon", "corte", "tinte",
				"manicure", "pedicure", "spa", "masaje",
				"gimnasio", "gym", "crossfit", "yoga", "pilates", "spinning",
				"bodytech", "smartfit",
				"lavanderia", "tintoreria", "planchado", "limpieza",
				"mantenimiento", "reparacion", "arreglo", "plomero",
				"electricista", "cerrajero", "pintor",
				"seguro", "poliza", "soat",
				"banco", "comision", "cuota de manejo", "transferencia", "retiro",
				"cajero", "tarjeta", "anualidad",
			},
		},
		{
			Name:        "Salario",
			Type:        models.TypeIncome,
			Icon:        "💼",
			Description: "Sueldo y pagos laborales",
			IsDefault:   true,
			Keywords: []string{
				"salario", "sueldo", "nomina", "quincena", "pago", "honorarios",
				"freelance", "prima", "cesantias", "bonificacion",
			},
		},
	}
}
